package shop

import (
	"context"
	"errors"

	"github.com/campusworks/campusmarket/internal/domain"
	perrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) PurgeStaleEntries(ctx context.Context, userID int64) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id NOT IN (?)",
			userID, s.db.Model(&domain.Product{}).Select("id")).
		Delete(&domain.CartEntry{})
	if res.Error != nil {
		return 0, perrors.Wrap(res.Error, "purge stale cart entries")
	}
	return res.RowsAffected, nil
}

func (s *GormStore) CartLines(ctx context.Context, userID int64) ([]CartLine, error) {
	var lines []CartLine
	err := s.db.WithContext(ctx).
		Table("cart c").
		Select("c.id AS entry_id, c.product_id, c.quantity, "+
			"p.name, p.image, p.price, p.stock, p.seller_id, u.name AS seller_name").
		Joins("INNER JOIN products p ON c.product_id = p.id").
		Joins("INNER JOIN users u ON p.seller_id = u.id").
		Where("c.user_id = ?", userID).
		Order("c.id").
		Scan(&lines).Error
	if err != nil {
		return nil, perrors.Wrap(err, "load cart lines")
	}
	return lines, nil
}

func (s *GormStore) EntryByProduct(ctx context.Context, userID, productID int64) (*domain.CartEntry, error) {
	var entry domain.CartEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.Wrap(err, "query cart entry")
	}
	return &entry, nil
}

func (s *GormStore) CreateEntry(ctx context.Context, entry *domain.CartEntry) error {
	return perrors.Wrap(s.db.WithContext(ctx).Create(entry).Error, "create cart entry")
}

func (s *GormStore) UpdateEntryQuantity(ctx context.Context, entryID int64, qty int) error {
	err := s.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("id = ?", entryID).
		Update("quantity", qty).Error
	return perrors.Wrap(err, "update cart quantity")
}

func (s *GormStore) UpdateOwnedQuantity(ctx context.Context, entryID, userID int64, qty int) error {
	err := s.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Update("quantity", qty).Error
	return perrors.Wrap(err, "update cart quantity")
}

func (s *GormStore) DeleteEntry(ctx context.Context, entryID int64) error {
	err := s.db.WithContext(ctx).Where("id = ?", entryID).Delete(&domain.CartEntry{}).Error
	return perrors.Wrap(err, "delete cart entry")
}

func (s *GormStore) DeleteOwnedEntry(ctx context.Context, entryID, userID int64) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&domain.CartEntry{}).Error
	return perrors.Wrap(err, "delete cart entry")
}

func (s *GormStore) ClearCart(ctx context.Context, userID int64) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartEntry{}).Error
	return perrors.Wrap(err, "clear cart")
}

func (s *GormStore) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.Wrap(err, "query product")
	}
	return &p, nil
}

func (s *GormStore) ReserveStock(ctx context.Context, productID int64, qty int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, perrors.Wrap(res.Error, "reserve stock")
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	return perrors.Wrap(s.db.WithContext(ctx).Create(order).Error, "create order")
}

func (s *GormStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	return perrors.Wrap(s.db.WithContext(ctx).Create(item).Error, "create order item")
}

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

package shop

import (
	"context"

	"github.com/campusworks/campusmarket/internal/domain"
)

// CartLine is one cart entry joined with the live product row it
// references.
type CartLine struct {
	EntryID    int64   `gorm:"column:entry_id" json:"entry_id,string"`
	ProductID  int64   `gorm:"column:product_id" json:"product_id,string"`
	Name       string  `gorm:"column:name" json:"name"`
	Image      string  `gorm:"column:image" json:"image"`
	Price      float64 `gorm:"column:price" json:"price"`
	Stock      int     `gorm:"column:stock" json:"stock"`
	Quantity   int     `gorm:"column:quantity" json:"quantity"`
	SellerID   int64   `gorm:"column:seller_id" json:"seller_id,string"`
	SellerName string  `gorm:"column:seller_name" json:"seller_name"`
	Subtotal   float64 `gorm:"-" json:"subtotal"`
}

// Store is the persistence surface the cart and checkout logic runs
// against. Transact runs fn against a store bound to one database
// transaction; returning an error rolls everything back.
type Store interface {
	// PurgeStaleEntries deletes the user's cart entries whose product no
	// longer exists and returns the number removed.
	PurgeStaleEntries(ctx context.Context, userID int64) (int64, error)

	// CartLines loads the user's remaining entries joined with current
	// product price, stock and seller.
	CartLines(ctx context.Context, userID int64) ([]CartLine, error)

	EntryByProduct(ctx context.Context, userID, productID int64) (*domain.CartEntry, error)
	CreateEntry(ctx context.Context, entry *domain.CartEntry) error
	UpdateEntryQuantity(ctx context.Context, entryID int64, qty int) error
	UpdateOwnedQuantity(ctx context.Context, entryID, userID int64, qty int) error
	DeleteEntry(ctx context.Context, entryID int64) error
	DeleteOwnedEntry(ctx context.Context, entryID, userID int64) error
	ClearCart(ctx context.Context, userID int64) error

	ProductByID(ctx context.Context, id int64) (*domain.Product, error)

	// ReserveStock atomically decrements the product's stock by qty if
	// and only if at least qty units remain. It reports false when the
	// decrement matched no row, which covers both insufficient stock
	// and a product deleted since reconciliation.
	ReserveStock(ctx context.Context, productID int64, qty int) (bool, error)

	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateOrderItem(ctx context.Context, item *domain.OrderItem) error

	Transact(ctx context.Context, fn func(Store) error) error
}

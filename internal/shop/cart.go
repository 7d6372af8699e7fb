// Package shop implements the cart and checkout logic of the
// marketplace: lazy cart/stock reconciliation and all-or-nothing order
// creation with conditional stock reservation.
package shop

import (
	"context"
	"errors"

	"github.com/campusworks/campusmarket/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("shipping address is required")
	ErrStockConflict   = errors.New("stock changed during checkout")
)

// Reconciliation is the result of aligning a cart with live stock.
type Reconciliation struct {
	Lines   []CartLine
	Total   float64
	Removed int64    // entries deleted because the product is gone
	Clamped []string // product names whose quantity was reduced to stock
	Dropped []string // product names removed because stock hit zero
}

// Service carries the cart and checkout operations over a Store.
type Service struct {
	store  Store
	maxQty func() int
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// SetQuantityLimit installs a dynamic upper bound for a single cart
// line's quantity. A limit of zero or less means unlimited.
func (s *Service) SetQuantityLimit(f func() int) {
	s.maxQty = f
}

func (s *Service) clampQty(qty int) int {
	if qty < 1 {
		qty = 1
	}
	if s.maxQty != nil {
		if limit := s.maxQty(); limit > 0 && qty > limit {
			qty = limit
		}
	}
	return qty
}

// AddToCart adds qty units of a product to the user's cart, bumping
// the quantity when an entry for the product already exists. The
// resulting quantity is capped at the configured limit.
func (s *Service) AddToCart(ctx context.Context, userID, productID int64, qty int) error {
	qty = s.clampQty(qty)
	product, err := s.store.ProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	entry, err := s.store.EntryByProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if entry != nil {
		return s.store.UpdateEntryQuantity(ctx, entry.ID, s.clampQty(entry.Quantity+qty))
	}
	return s.store.CreateEntry(ctx, &domain.CartEntry{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	})
}

// UpdateQuantity sets the quantity of one of the user's cart entries.
// A quantity of zero or less removes the entry.
func (s *Service) UpdateQuantity(ctx context.Context, userID, entryID int64, qty int) error {
	if qty <= 0 {
		return s.store.DeleteOwnedEntry(ctx, entryID, userID)
	}
	return s.store.UpdateOwnedQuantity(ctx, entryID, userID, s.clampQty(qty))
}

// RemoveEntry deletes one of the user's cart entries.
func (s *Service) RemoveEntry(ctx context.Context, userID, entryID int64) error {
	return s.store.DeleteOwnedEntry(ctx, entryID, userID)
}

// Reconcile aligns the user's cart with current product state and
// returns the surviving lines with their subtotals and the total.
//
// Policy: entries whose product is gone are deleted; entries whose
// quantity exceeds stock are clamped down (and the clamp is persisted)
// when stock remains, or deleted when stock is zero. Reconciling an
// already-reconciled cart changes nothing.
func (s *Service) Reconcile(ctx context.Context, userID int64) (*Reconciliation, error) {
	removed, err := s.store.PurgeStaleEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		zap.L().Info("removed stale cart entries",
			zap.Int64("user_id", userID), zap.Int64("count", removed))
	}

	lines, err := s.store.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	rec := &Reconciliation{Removed: removed}
	for _, line := range lines {
		if line.Stock < line.Quantity {
			if line.Stock > 0 {
				if err := s.store.UpdateEntryQuantity(ctx, line.EntryID, line.Stock); err != nil {
					return nil, err
				}
				line.Quantity = line.Stock
				rec.Clamped = append(rec.Clamped, line.Name)
			} else {
				if err := s.store.DeleteEntry(ctx, line.EntryID); err != nil {
					return nil, err
				}
				rec.Dropped = append(rec.Dropped, line.Name)
				continue
			}
		}
		line.Subtotal = line.Price * float64(line.Quantity)
		rec.Total += line.Subtotal
		rec.Lines = append(rec.Lines, line)
	}
	return rec, nil
}

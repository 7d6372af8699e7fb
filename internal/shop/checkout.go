package shop

import (
	"context"
	"strings"
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/pkg/common"
	perrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// orderID is swapped out in tests for deterministic identifiers.
var orderID = common.UUIDint64

// Checkout converts the user's reconciled cart into a persisted order.
//
// Order creation is all-or-nothing: the header, every line snapshot
// and the stock reservations commit in one transaction, and any
// failure rolls the whole order back. Stock is reserved with a
// conditional decrement inside the transaction, so two concurrent
// checkouts racing for the last unit cannot both succeed; the loser
// fails with ErrStockConflict and keeps its cart.
//
// The reconciliation that ran is returned alongside the order (or the
// error) so the caller can surface clamp and removal notices.
func (s *Service) Checkout(ctx context.Context, userID int64, paymentMethod, address string) (*domain.Order, *Reconciliation, error) {
	if strings.TrimSpace(address) == "" {
		return nil, nil, ErrAddressRequired
	}

	rec, err := s.Reconcile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(rec.Lines) == 0 {
		return nil, rec, ErrEmptyCart
	}

	order := &domain.Order{
		ID:              orderID(),
		UserID:          userID,
		TotalAmount:     rec.Total,
		PaymentMethod:   paymentMethod,
		ShippingAddress: address,
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err = s.store.Transact(ctx, func(tx Store) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, line := range rec.Lines {
			reserved, err := tx.ReserveStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !reserved {
				// Stock moved (or the product vanished) between
				// reconciliation and here; abort the whole order.
				return perrors.Wrapf(ErrStockConflict, "product %q", line.Name)
			}
			item := &domain.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Image:       line.Image,
				Quantity:    line.Quantity,
				Price:       line.Price,
				CreatedAt:   time.Now(),
			}
			if err := tx.CreateOrderItem(ctx, item); err != nil {
				return err
			}
		}
		return tx.ClearCart(ctx, userID)
	})
	if err != nil {
		zap.L().Warn("checkout failed",
			zap.Int64("user_id", userID),
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		return nil, rec, err
	}

	zap.L().Info("order placed",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", order.ID),
		zap.Float64("total", order.TotalAmount),
		zap.Int("items", len(rec.Lines)))
	return order, rec, nil
}

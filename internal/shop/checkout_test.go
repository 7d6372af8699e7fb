package shop_test

import (
	"context"
	"testing"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/mocks"
	"github.com/campusworks/campusmarket/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedOrderID(t *testing.T, id int64) {
	t.Helper()
	restore := shop.SetOrderIDFunc(func() int64 { return id })
	t.Cleanup(restore)
}

func cleanCart(store *mocks.MockStore, lines []shop.CartLine) {
	store.On("PurgeStaleEntries", mock.Anything, testUserID).Return(int64(0), nil)
	store.On("CartLines", mock.Anything, testUserID).Return(lines, nil)
}

func TestCheckout_Success(t *testing.T) {
	fixedOrderID(t, 9001)

	store := new(mocks.MockStore)
	cleanCart(store, []shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Calculus Textbook", Image: "book.jpg", Price: 12.5, Stock: 3, Quantity: 2},
		{EntryID: 2, ProductID: 11, Name: "USB Cable", Image: "cable.jpg", Price: 2.25, Stock: 9, Quantity: 4},
	})
	store.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == 9001 && o.UserID == testUserID &&
			o.Status == domain.OrderStatusPending &&
			o.TotalAmount == 2*12.5+4*2.25
	})).Return(nil)
	store.On("ReserveStock", mock.Anything, int64(10), 2).Return(true, nil)
	store.On("ReserveStock", mock.Anything, int64(11), 4).Return(true, nil)
	store.On("CreateOrderItem", mock.Anything, mock.MatchedBy(func(i *domain.OrderItem) bool {
		return i.OrderID == 9001 && i.ProductID == 10 && i.Quantity == 2 && i.Price == 12.5 &&
			i.ProductName == "Calculus Textbook"
	})).Return(nil)
	store.On("CreateOrderItem", mock.Anything, mock.MatchedBy(func(i *domain.OrderItem) bool {
		return i.OrderID == 9001 && i.ProductID == 11 && i.Quantity == 4 && i.Price == 2.25
	})).Return(nil)
	store.On("ClearCart", mock.Anything, testUserID).Return(nil)

	svc := shop.NewService(store)
	order, rec, err := svc.Checkout(context.Background(), testUserID, "cash", "Dorm 5, Room 112")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(9001), order.ID)
	assert.Equal(t, rec.Total, order.TotalAmount)
	store.AssertExpectations(t)
}

func TestCheckout_EmptyCartCreatesNoOrder(t *testing.T) {
	store := new(mocks.MockStore)
	cleanCart(store, nil)

	svc := shop.NewService(store)
	order, _, err := svc.Checkout(context.Background(), testUserID, "cash", "somewhere")
	assert.ErrorIs(t, err, shop.ErrEmptyCart)
	assert.Nil(t, order)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCheckout_FullyInvalidatedCartCreatesNoOrder(t *testing.T) {
	store := new(mocks.MockStore)
	cleanCart(store, []shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Sold Out Thing", Price: 5, Stock: 0, Quantity: 2},
	})
	store.On("DeleteEntry", mock.Anything, int64(1)).Return(nil)

	svc := shop.NewService(store)
	order, rec, err := svc.Checkout(context.Background(), testUserID, "cash", "somewhere")
	assert.ErrorIs(t, err, shop.ErrEmptyCart)
	assert.Nil(t, order)
	assert.Equal(t, []string{"Sold Out Thing"}, rec.Dropped)
	store.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCheckout_MissingAddress(t *testing.T) {
	store := new(mocks.MockStore)
	svc := shop.NewService(store)
	order, _, err := svc.Checkout(context.Background(), testUserID, "cash", "   ")
	assert.ErrorIs(t, err, shop.ErrAddressRequired)
	assert.Nil(t, order)
	store.AssertNotCalled(t, "PurgeStaleEntries", mock.Anything, mock.Anything)
}

func TestCheckout_StockConflictAbortsWholeOrder(t *testing.T) {
	fixedOrderID(t, 9002)

	store := new(mocks.MockStore)
	cleanCart(store, []shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Calculus Textbook", Price: 12.5, Stock: 2, Quantity: 2},
		{EntryID: 2, ProductID: 11, Name: "USB Cable", Price: 2.25, Stock: 4, Quantity: 1},
	})
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("ReserveStock", mock.Anything, int64(10), 2).Return(true, nil)
	store.On("CreateOrderItem", mock.Anything, mock.Anything).Return(nil).Once()
	// second product raced away between reconcile and reserve
	store.On("ReserveStock", mock.Anything, int64(11), 1).Return(false, nil)

	svc := shop.NewService(store)
	order, _, err := svc.Checkout(context.Background(), testUserID, "cash", "somewhere")
	assert.ErrorIs(t, err, shop.ErrStockConflict)
	assert.Nil(t, order)
	// the transaction never reaches the cart clear
	store.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
}

// Two checkouts racing for the last unit: the conditional decrement
// lets exactly one through.
func TestCheckout_LastUnitRace(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, mock.Anything).Return(int64(0), nil)
	store.On("CartLines", mock.Anything, mock.Anything).Return([]shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Last Widget", Price: 9.99, Stock: 1, Quantity: 1},
	}, nil)
	store.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	store.On("ReserveStock", mock.Anything, int64(10), 1).Return(true, nil).Once()
	store.On("ReserveStock", mock.Anything, int64(10), 1).Return(false, nil)
	store.On("CreateOrderItem", mock.Anything, mock.Anything).Return(nil)
	store.On("ClearCart", mock.Anything, mock.Anything).Return(nil)

	svc := shop.NewService(store)
	var succeeded, conflicted int
	for i := 0; i < 2; i++ {
		_, _, err := svc.Checkout(context.Background(), int64(100+i), "cash", "somewhere")
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, shop.ErrStockConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

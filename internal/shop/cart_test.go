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

const testUserID = int64(42)

func TestReconcile_ClampsAndDrops(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, testUserID).Return(int64(0), nil)
	store.On("CartLines", mock.Anything, testUserID).Return([]shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Calculus Textbook", Price: 12.5, Stock: 3, Quantity: 5},
		{EntryID: 2, ProductID: 11, Name: "Desk Lamp", Price: 8.0, Stock: 0, Quantity: 2},
	}, nil)
	store.On("UpdateEntryQuantity", mock.Anything, int64(1), 3).Return(nil)
	store.On("DeleteEntry", mock.Anything, int64(2)).Return(nil)

	svc := shop.NewService(store)
	rec, err := svc.Reconcile(context.Background(), testUserID)
	require.NoError(t, err)

	require.Len(t, rec.Lines, 1)
	assert.Equal(t, 3, rec.Lines[0].Quantity)
	assert.Equal(t, 3*12.5, rec.Lines[0].Subtotal)
	assert.Equal(t, 3*12.5, rec.Total)
	assert.Equal(t, []string{"Calculus Textbook"}, rec.Clamped)
	assert.Equal(t, []string{"Desk Lamp"}, rec.Dropped)
	store.AssertExpectations(t)
}

func TestReconcile_ReportsStaleRemovals(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, testUserID).Return(int64(2), nil)
	store.On("CartLines", mock.Anything, testUserID).Return([]shop.CartLine{}, nil)

	svc := shop.NewService(store)
	rec, err := svc.Reconcile(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), rec.Removed)
	assert.Empty(t, rec.Lines)
	assert.Zero(t, rec.Total)
	store.AssertExpectations(t)
}

func TestReconcile_IdempotentUnderUnchangedStock(t *testing.T) {
	lines := []shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Calculus Textbook", Price: 12.5, Stock: 3, Quantity: 3},
		{EntryID: 2, ProductID: 11, Name: "USB Cable", Price: 2.25, Stock: 9, Quantity: 2},
	}
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, testUserID).Return(int64(0), nil)
	store.On("CartLines", mock.Anything, testUserID).Return(lines, nil)

	svc := shop.NewService(store)
	first, err := svc.Reconcile(context.Background(), testUserID)
	require.NoError(t, err)
	second, err := svc.Reconcile(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, 3*12.5+2*2.25, second.Total)
	// no writes happen on an already-valid cart
	store.AssertNotCalled(t, "UpdateEntryQuantity", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "DeleteEntry", mock.Anything, mock.Anything)
}

func TestReconcile_TotalMatchesSurvivingLines(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("PurgeStaleEntries", mock.Anything, testUserID).Return(int64(1), nil)
	store.On("CartLines", mock.Anything, testUserID).Return([]shop.CartLine{
		{EntryID: 1, ProductID: 10, Name: "Notebook", Price: 3.5, Stock: 10, Quantity: 4},
		{EntryID: 2, ProductID: 11, Name: "Backpack", Price: 27.0, Stock: 1, Quantity: 3},
		{EntryID: 3, ProductID: 12, Name: "Sticker Pack", Price: 1.0, Stock: 0, Quantity: 1},
	}, nil)
	store.On("UpdateEntryQuantity", mock.Anything, int64(2), 1).Return(nil)
	store.On("DeleteEntry", mock.Anything, int64(3)).Return(nil)

	svc := shop.NewService(store)
	rec, err := svc.Reconcile(context.Background(), testUserID)
	require.NoError(t, err)

	var sum float64
	for _, line := range rec.Lines {
		assert.LessOrEqual(t, line.Quantity, line.Stock)
		sum += line.Price * float64(line.Quantity)
	}
	assert.Equal(t, sum, rec.Total)
	store.AssertExpectations(t)
}

func TestAddToCart(t *testing.T) {
	tests := []struct {
		name       string
		qty        int
		setupMocks func(*mocks.MockStore)
		wantErr    error
	}{
		{
			name: "new entry",
			qty:  2,
			setupMocks: func(store *mocks.MockStore) {
				store.On("ProductByID", mock.Anything, int64(10)).
					Return(&domain.Product{ID: 10, Name: "Notebook"}, nil)
				store.On("EntryByProduct", mock.Anything, testUserID, int64(10)).
					Return(nil, nil)
				store.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e *domain.CartEntry) bool {
					return e.UserID == testUserID && e.ProductID == 10 && e.Quantity == 2
				})).Return(nil)
			},
		},
		{
			name: "existing entry bumps quantity",
			qty:  3,
			setupMocks: func(store *mocks.MockStore) {
				store.On("ProductByID", mock.Anything, int64(10)).
					Return(&domain.Product{ID: 10}, nil)
				store.On("EntryByProduct", mock.Anything, testUserID, int64(10)).
					Return(&domain.CartEntry{ID: 7, UserID: testUserID, ProductID: 10, Quantity: 1}, nil)
				store.On("UpdateEntryQuantity", mock.Anything, int64(7), 4).Return(nil)
			},
		},
		{
			name: "zero quantity defaults to one",
			qty:  0,
			setupMocks: func(store *mocks.MockStore) {
				store.On("ProductByID", mock.Anything, int64(10)).
					Return(&domain.Product{ID: 10}, nil)
				store.On("EntryByProduct", mock.Anything, testUserID, int64(10)).
					Return(nil, nil)
				store.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e *domain.CartEntry) bool {
					return e.Quantity == 1
				})).Return(nil)
			},
		},
		{
			name: "missing product",
			qty:  1,
			setupMocks: func(store *mocks.MockStore) {
				store.On("ProductByID", mock.Anything, int64(10)).Return(nil, nil)
			},
			wantErr: shop.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockStore)
			tt.setupMocks(store)

			svc := shop.NewService(store)
			err := svc.AddToCart(context.Background(), testUserID, 10, tt.qty)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestCartQuantityLimit(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("ProductByID", mock.Anything, int64(10)).
		Return(&domain.Product{ID: 10, Name: "Notebook"}, nil)
	store.On("EntryByProduct", mock.Anything, testUserID, int64(10)).
		Return(&domain.CartEntry{ID: 7, UserID: testUserID, ProductID: 10, Quantity: 98}, nil)
	// 98 + 5 is capped at the configured maximum of 99
	store.On("UpdateEntryQuantity", mock.Anything, int64(7), 99).Return(nil)
	store.On("UpdateOwnedQuantity", mock.Anything, int64(7), testUserID, 99).Return(nil)

	svc := shop.NewService(store)
	svc.SetQuantityLimit(func() int { return 99 })

	require.NoError(t, svc.AddToCart(context.Background(), testUserID, 10, 5))
	require.NoError(t, svc.UpdateQuantity(context.Background(), testUserID, 7, 500))
	store.AssertExpectations(t)
}

func TestUpdateQuantity(t *testing.T) {
	store := new(mocks.MockStore)
	store.On("UpdateOwnedQuantity", mock.Anything, int64(7), testUserID, 5).Return(nil)
	store.On("DeleteOwnedEntry", mock.Anything, int64(7), testUserID).Return(nil)

	svc := shop.NewService(store)
	require.NoError(t, svc.UpdateQuantity(context.Background(), testUserID, 7, 5))
	// zero removes the entry
	require.NoError(t, svc.UpdateQuantity(context.Background(), testUserID, 7, 0))
	store.AssertExpectations(t)
}

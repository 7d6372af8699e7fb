// Package mocks provides testify-backed doubles for the shop store.
package mocks

import (
	"context"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/shop"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

var _ shop.Store = (*MockStore)(nil)

func (m *MockStore) PurgeStaleEntries(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CartLines(ctx context.Context, userID int64) ([]shop.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.CartLine), args.Error(1)
}

func (m *MockStore) EntryByProduct(ctx context.Context, userID, productID int64) (*domain.CartEntry, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartEntry), args.Error(1)
}

func (m *MockStore) CreateEntry(ctx context.Context, entry *domain.CartEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStore) UpdateEntryQuantity(ctx context.Context, entryID int64, qty int) error {
	args := m.Called(ctx, entryID, qty)
	return args.Error(0)
}

func (m *MockStore) UpdateOwnedQuantity(ctx context.Context, entryID, userID int64, qty int) error {
	args := m.Called(ctx, entryID, userID, qty)
	return args.Error(0)
}

func (m *MockStore) DeleteEntry(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockStore) DeleteOwnedEntry(ctx context.Context, entryID, userID int64) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockStore) ClearCart(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStore) ReserveStock(ctx context.Context, productID int64, qty int) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// Transact runs fn against the mock itself; the expectations set on
// the mock stand in for the transaction body.
func (m *MockStore) Transact(ctx context.Context, fn func(shop.Store) error) error {
	return fn(m)
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockOrderStore is a mock of store.OrderStore interface for use with testify/mock
type MockOrderStore struct {
	mock.Mock
}

var _ store.OrderStore = (*MockOrderStore)(nil)

func (m *MockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*domain.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*domain.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) ListProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	args := m.Called(ctx, orderID)
	if products, ok := args.Get(0).([]domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) AddProduct(ctx context.Context, orderID, productID int64) (bool, error) {
	args := m.Called(ctx, orderID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) RemoveProduct(ctx context.Context, orderID, productID int64) (bool, error) {
	args := m.Called(ctx, orderID, productID)
	return args.Bool(0), args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockOrderStore) WithTx(*sql.Tx) store.OrderStore {
	return m
}

package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockProductStore is a mock of store.ProductStore interface for use with testify/mock
type MockProductStore struct {
	mock.Mock
}

var _ store.ProductStore = (*MockProductStore)(nil)

func (m *MockProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]*domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*domain.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *MockProductStore) WithTx(*sql.Tx) store.ProductStore {
	return m
}

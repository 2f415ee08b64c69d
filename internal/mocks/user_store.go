package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock of store.UserStore interface for use with testify/mock
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// List is a mock implementation of store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

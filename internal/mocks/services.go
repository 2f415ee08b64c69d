package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/service"
)

// MockUserService implements service.UserService with function fields.
type MockUserService struct {
	ListUsersFn  func(ctx context.Context) ([]*domain.User, error)
	GetUserFn    func(ctx context.Context, id int64) (*domain.User, error)
	CreateUserFn func(ctx context.Context, name, address, email string) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, id int64) error
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return []*domain.User{}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) CreateUser(ctx context.Context, name, address, email string) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name, address, email)
	}
	return nil, nil
}

func (m *MockUserService) UpdateUser(
	ctx context.Context,
	id int64,
	patch domain.UserPatch,
) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return nil
}

// MockProductService implements service.ProductService with function fields.
type MockProductService struct {
	ListProductsFn  func(ctx context.Context) ([]*domain.Product, error)
	GetProductFn    func(ctx context.Context, id int64) (*domain.Product, error)
	CreateProductFn func(ctx context.Context, productName string, price float64) (*domain.Product, error)
	UpdateProductFn func(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProductFn func(ctx context.Context, id int64) error
}

var _ service.ProductService = (*MockProductService)(nil)

func (m *MockProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx)
	}
	return []*domain.Product{}, nil
}

func (m *MockProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, nil
}

func (m *MockProductService) CreateProduct(
	ctx context.Context,
	productName string,
	price float64,
) (*domain.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, productName, price)
	}
	return nil, nil
}

func (m *MockProductService) UpdateProduct(
	ctx context.Context,
	id int64,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id int64) error {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(ctx, id)
	}
	return nil
}

// MockOrderService implements service.OrderService with function fields.
type MockOrderService struct {
	CreateOrderFn func(
		ctx context.Context,
		userID int64,
		orderDate time.Time,
		productIDs []int64,
	) (*domain.Order, error)
	AddProductFn        func(ctx context.Context, orderID, productID int64) (*domain.Order, error)
	RemoveProductFn     func(ctx context.Context, orderID, productID int64) (*domain.Order, error)
	ListOrdersByUserFn  func(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListOrderProductsFn func(ctx context.Context, orderID int64) ([]domain.Product, error)
}

var _ service.OrderService = (*MockOrderService)(nil)

func (m *MockOrderService) CreateOrder(
	ctx context.Context,
	userID int64,
	orderDate time.Time,
	productIDs []int64,
) (*domain.Order, error) {
	if m.CreateOrderFn != nil {
		return m.CreateOrderFn(ctx, userID, orderDate, productIDs)
	}
	return nil, nil
}

func (m *MockOrderService) AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error) {
	if m.AddProductFn != nil {
		return m.AddProductFn(ctx, orderID, productID)
	}
	return nil, nil
}

func (m *MockOrderService) RemoveProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error) {
	if m.RemoveProductFn != nil {
		return m.RemoveProductFn(ctx, orderID, productID)
	}
	return nil, nil
}

func (m *MockOrderService) ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if m.ListOrdersByUserFn != nil {
		return m.ListOrdersByUserFn(ctx, userID)
	}
	return []*domain.Order{}, nil
}

func (m *MockOrderService) ListOrderProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	if m.ListOrderProductsFn != nil {
		return m.ListOrderProductsFn(ctx, orderID)
	}
	return []domain.Product{}, nil
}

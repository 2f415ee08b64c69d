package api

import (
	"time"

	"github.com/phrazzld/shop-api/internal/domain"
)

// UserRequest is the body of POST /users.
type UserRequest struct {
	Name    *string `json:"name"    validate:"required,max=100"`
	Address *string `json:"address" validate:"required,max=255"`
	Email   *string `json:"email"   validate:"required,max=120"`
}

// UserUpdateRequest is the body of PUT /users/{id}. Absent fields are kept.
type UserUpdateRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Email   *string `json:"email"   validate:"omitempty,max=120"`
}

// Patch converts the request to a domain patch.
func (r UserUpdateRequest) Patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Address: r.Address, Email: r.Email}
}

// ProductRequest is the body of POST /products.
type ProductRequest struct {
	ProductName *string  `json:"product_name" validate:"required,max=100"`
	Price       *float64 `json:"price"        validate:"required"`
}

// ProductUpdateRequest is the body of PUT /products/{id}. Absent fields are kept.
type ProductUpdateRequest struct {
	ProductName *string  `json:"product_name" validate:"omitempty,max=100"`
	Price       *float64 `json:"price"`
}

// Patch converts the request to a domain patch.
func (r ProductUpdateRequest) Patch() domain.ProductPatch {
	return domain.ProductPatch{ProductName: r.ProductName, Price: r.Price}
}

// ProductRef references an existing product by ID.
type ProductRef struct {
	ID *int64 `json:"id" validate:"required"`
}

// OrderCreateRequest is the body of POST /orders.
type OrderCreateRequest struct {
	UserID    *int64       `json:"user_id"`
	OrderDate *time.Time   `json:"order_date"`
	Products  []ProductRef `json:"products" validate:"omitempty,dive"`
}

// ProductIDs returns the referenced product IDs in request order.
func (r OrderCreateRequest) ProductIDs() []int64 {
	ids := make([]int64, 0, len(r.Products))
	for _, ref := range r.Products {
		if ref.ID != nil {
			ids = append(ids, *ref.ID)
		}
	}
	return ids
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// ProductResponse is the wire form of a product.
type ProductResponse struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

// OrderUserResponse is the trimmed user nested in orders. It has no address.
type OrderUserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID        int64              `json:"id"`
	OrderDate time.Time          `json:"order_date"`
	UserID    int64              `json:"user_id"`
	User      *OrderUserResponse `json:"user"`
	Products  []ProductResponse  `json:"products"`
}

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Address: user.Address,
		Email:   user.Email,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userToResponse(user))
	}
	return out
}

func productToResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		ProductName: product.ProductName,
		Price:       product.Price,
	}
}

func productsToResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, productToResponse(product))
	}
	return out
}

func productPtrsToResponse(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, productToResponse(*product))
	}
	return out
}

func orderToResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID,
		OrderDate: order.OrderDate.UTC(),
		UserID:    order.UserID,
		Products:  productsToResponse(order.Products),
	}
	if order.User != nil {
		resp.User = &OrderUserResponse{
			ID:    order.User.ID,
			Name:  order.User.Name,
			Email: order.User.Email,
		}
	}
	return resp
}

func ordersToResponse(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderToResponse(order))
	}
	return out
}

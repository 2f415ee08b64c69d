package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shop-api/internal/domain"
)

// OrderStore defines the interface for order and order membership persistence.
// Orders returned by the Get/List methods have User and Products populated.
type OrderStore interface {
	// Create saves a new order and sets order.ID.
	// Returns ErrInvalidEntity if the user does not exist.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its user and products.
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByUser returns the orders owned by userID ordered by ID.
	// It never returns nil.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)

	// ListProducts returns the products of an order ordered by product ID.
	// It never returns nil and does not check that the order exists.
	ListProducts(ctx context.Context, orderID int64) ([]domain.Product, error)

	// AddProduct links a product to an order. It reports false, without
	// error, when the product was already part of the order.
	AddProduct(ctx context.Context, orderID, productID int64) (bool, error)

	// RemoveProduct unlinks a product from an order. It reports false,
	// without error, when the product was not part of the order.
	RemoveProduct(ctx context.Context, orderID, productID int64) (bool, error)

	// WithTx returns an OrderStore that runs its queries on tx.
	WithTx(tx *sql.Tx) OrderStore
}

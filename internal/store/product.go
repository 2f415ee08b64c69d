package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shop-api/internal/domain"
)

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// List returns every product ordered by ID. It never returns nil.
	List(ctx context.Context) ([]*domain.Product, error)

	// Create saves a new product and sets product.ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Update writes every field of product.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by ID. Its order memberships go with it.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a ProductStore that runs its queries on tx.
	WithTx(tx *sql.Tx) ProductStore
}

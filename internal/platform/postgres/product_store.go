package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

var _ store.ProductStore = (*PostgresProductStore)(nil)

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_name, price
		FROM product
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to list products", slog.String("error", err.Error()))
		return nil, storeFault("product", "list", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.ProductName, &product.Price); err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating product rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("products listed", slog.Int("count", len(products)))
	return products, nil
}

// Create implements store.ProductStore.Create
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO product (product_name, price)
		VALUES ($1, $2)
		RETURNING id
	`, product.ProductName, product.Price).Scan(&product.ID)
	if err != nil {
		log.Error("failed to create product", slog.String("error", err.Error()))
		return storeFault("product", "create", err)
	}

	log.Info("product created successfully", slog.Int64("product_id", product.ID))
	return nil
}

// GetByID implements store.ProductStore.GetByID
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var product domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, product_name, price
		FROM product
		WHERE id = $1
	`, id).Scan(&product.ID, &product.ProductName, &product.Price)
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("product not found", slog.Int64("product_id", id))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, storeFault("product", "get", err)
	}

	return &product, nil
}

// Update implements store.ProductStore.Update
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE product
		SET product_name = $1, price = $2
		WHERE id = $3
	`, product.ProductName, product.Price, product.ID)
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return storeFault("product", "update", err)
	}

	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product updated successfully", slog.Int64("product_id", product.ID))
	return nil
}

// Delete implements store.ProductStore.Delete
// Memberships of the product are removed by the order_product cascade.
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return storeFault("product", "delete", err)
	}

	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		log.Debug("product to delete not found", slog.Int64("product_id", id))
		return err
	}

	log.Info("product deleted successfully", slog.Int64("product_id", id))
	return nil
}

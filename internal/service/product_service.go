package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// ProductService provides product-related operations.
type ProductService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, productName string, price float64) (*domain.Product, error)

	// UpdateProduct merges the present fields of patch onto the stored product.
	UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)

	// DeleteProduct deletes a product and its order memberships.
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productStore store.ProductStore
	transactor   store.Transactor
	logger       *slog.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productStore store.ProductStore,
	transactor store.Transactor,
	logger *slog.Logger,
) ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &productService{
		productStore: productStore,
		transactor:   transactor,
		logger:       logger.With(slog.String("component", "product_service")),
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		products, err = s.productStore.WithTx(tx).List(ctx)
		return err
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list products", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product *domain.Product
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		product, err = s.productStore.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to retrieve product", err,
			slog.Int64("product_id", id))
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return product, nil
}

func (s *productService) CreateProduct(
	ctx context.Context,
	productName string,
	price float64,
) (*domain.Product, error) {
	product, err := domain.NewProduct(productName, price)
	if err != nil {
		return nil, err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.productStore.WithTx(tx).Create(ctx, product)
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to create product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("product created successfully",
		slog.Int64("product_id", product.ID))
	return product, nil
}

func (s *productService) UpdateProduct(
	ctx context.Context,
	id int64,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	var product *domain.Product
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.productStore.WithTx(tx)

		var err error
		product, err = txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			return nil
		}

		patch.Apply(product)
		if err := product.Validate(); err != nil {
			return err
		}
		return txStore.Update(ctx, product)
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to update product", err,
			slog.Int64("product_id", id))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("product updated successfully",
		slog.Int64("product_id", id))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.productStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to delete product", err,
			slog.Int64("product_id", id))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("product deleted successfully",
		slog.Int64("product_id", id))
	return nil
}

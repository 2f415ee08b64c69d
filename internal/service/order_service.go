package service

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// OrderService provides order-related operations, including changes to the
// set of products an order holds.
type OrderService interface {
	// CreateOrder creates an order for userID holding productIDs.
	// Returns ErrUserIDRequired when userID is zero, and
	// store.ErrUserNotFound or store.ErrProductNotFound when a reference
	// does not resolve; nothing is written in those cases. A zero orderDate
	// means now. Repeated product IDs are merged.
	CreateOrder(
		ctx context.Context,
		userID int64,
		orderDate time.Time,
		productIDs []int64,
	) (*domain.Order, error)

	// AddProduct adds a product to an order and returns the updated order.
	// Returns ErrProductAlreadyInOrder if the order already holds it.
	AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error)

	// RemoveProduct removes a product from an order and returns the updated order.
	// Returns ErrProductNotInOrder if the order does not hold it.
	RemoveProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error)

	// ListOrdersByUser returns the orders of an existing user.
	ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error)

	// ListOrderProducts returns the products of an existing order.
	ListOrderProducts(ctx context.Context, orderID int64) ([]domain.Product, error)
}

type orderService struct {
	orderStore   store.OrderStore
	userStore    store.UserStore
	productStore store.ProductStore
	transactor   store.Transactor
	logger       *slog.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderStore store.OrderStore,
	userStore store.UserStore,
	productStore store.ProductStore,
	transactor store.Transactor,
	logger *slog.Logger,
) OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderService{
		orderStore:   orderStore,
		userStore:    userStore,
		productStore: productStore,
		transactor:   transactor,
		logger:       logger.With(slog.String("component", "order_service")),
	}
}

func (s *orderService) CreateOrder(
	ctx context.Context,
	userID int64,
	orderDate time.Time,
	productIDs []int64,
) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == 0 {
		return nil, ErrUserIDRequired
	}

	order, err := domain.NewOrder(userID, orderDate)
	if err != nil {
		return nil, err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		orders := s.orderStore.WithTx(tx)
		products := s.productStore.WithTx(tx)

		user, err := s.userStore.WithTx(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}
		order.User = user

		for _, productID := range domain.UniqueProductIDs(productIDs) {
			product, err := products.GetByID(ctx, productID)
			if err != nil {
				return err
			}
			order.Products = append(order.Products, *product)
		}

		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		for _, product := range order.Products {
			if _, err := orders.AddProduct(ctx, order.ID, product.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to create order", err,
			slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	sortProducts(order.Products)
	log.Info("order created successfully",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.Int("product_count", len(order.Products)))
	return order, nil
}

func (s *orderService) AddProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		orders := s.orderStore.WithTx(tx)

		var err error
		order, err = orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		product, err := s.productStore.WithTx(tx).GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if order.HasProduct(productID) {
			return ErrProductAlreadyInOrder
		}

		added, err := orders.AddProduct(ctx, orderID, productID)
		if err != nil {
			return err
		}
		// A concurrent request added it after the order was read.
		if !added {
			return ErrProductAlreadyInOrder
		}

		order.Products = append(order.Products, *product)
		sortProducts(order.Products)
		return nil
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to add product to order", err,
			slog.Int64("order_id", orderID), slog.Int64("product_id", productID))
		return nil, fmt.Errorf("failed to add product to order: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("product added to order",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", productID))
	return order, nil
}

func (s *orderService) RemoveProduct(ctx context.Context, orderID, productID int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		orders := s.orderStore.WithTx(tx)

		var err error
		order, err = orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		if _, err := s.productStore.WithTx(tx).GetByID(ctx, productID); err != nil {
			return err
		}

		if !order.HasProduct(productID) {
			return ErrProductNotInOrder
		}

		removed, err := orders.RemoveProduct(ctx, orderID, productID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrProductNotInOrder
		}

		order.Products = slices.DeleteFunc(order.Products, func(p domain.Product) bool {
			return p.ID == productID
		})
		return nil
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to remove product from order", err,
			slog.Int64("order_id", orderID), slog.Int64("product_id", productID))
		return nil, fmt.Errorf("failed to remove product from order: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("product removed from order",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", productID))
	return order, nil
}

func (s *orderService) ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.userStore.WithTx(tx).GetByID(ctx, userID); err != nil {
			return err
		}

		var err error
		orders, err = s.orderStore.WithTx(tx).ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list orders for user", err,
			slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list orders for user: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListOrderProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	var order *domain.Order
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		order, err = s.orderStore.WithTx(tx).GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to list order products", err,
			slog.Int64("order_id", orderID))
		return nil, fmt.Errorf("failed to list order products: %w", err)
	}
	if order.Products == nil {
		return []domain.Product{}, nil
	}
	return order.Products, nil
}

func sortProducts(products []domain.Product) {
	slices.SortFunc(products, func(a, b domain.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// PostgresOrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend. It also owns the
// order_product association table.
type PostgresOrderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the OrderStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresOrderStore(db store.DBTX, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

var _ store.OrderStore = (*PostgresOrderStore)(nil)

// WithTx implements store.OrderStore.WithTx
func (s *PostgresOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &PostgresOrderStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.OrderStore.Create
// Products attached to order are not written; use AddProduct.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO "order" (order_date, user_id)
		VALUES ($1, $2)
		RETURNING id
	`, order.OrderDate, order.UserID).Scan(&order.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during order creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", order.UserID))
		} else {
			log.Error("failed to create order",
				slog.String("error", err.Error()),
				slog.Int64("user_id", order.UserID))
		}
		return storeFault("order", "create", err)
	}

	log.Info("order created successfully",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", order.UserID))
	return nil
}

// GetByID implements store.OrderStore.GetByID
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var order domain.Order
	var user domain.User
	err := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.order_date, o.user_id, u.id, u.name, u.address, u.email
		FROM "order" o
		JOIN "user" u ON u.id = o.user_id
		WHERE o.id = $1
	`, id).Scan(
		&order.ID,
		&order.OrderDate,
		&order.UserID,
		&user.ID,
		&user.Name,
		&user.Address,
		&user.Email,
	)
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("order not found", slog.Int64("order_id", id))
			return nil, store.ErrOrderNotFound
		}
		log.Error("failed to get order by ID",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return nil, storeFault("order", "get", err)
	}
	order.OrderDate = order.OrderDate.UTC()
	order.User = &user

	products, err := s.ListProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Products = products

	return &order, nil
}

// ListByUser implements store.OrderStore.ListByUser
// The products of all listed orders are loaded with a single query.
func (s *PostgresOrderStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.order_date, o.user_id, u.id, u.name, u.address, u.email
		FROM "order" o
		JOIN "user" u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.id
	`, userID)
	if err != nil {
		log.Error("failed to list orders by user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, storeFault("order", "list", err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]*domain.Order, 0)
	byID := make(map[int64]*domain.Order)
	ids := make([]int64, 0)
	for rows.Next() {
		var order domain.Order
		var user domain.User
		if err := rows.Scan(
			&order.ID,
			&order.OrderDate,
			&order.UserID,
			&user.ID,
			&user.Name,
			&user.Address,
			&user.Email,
		); err != nil {
			log.Error("failed to scan order row", slog.String("error", err.Error()))
			return nil, err
		}
		order.OrderDate = order.OrderDate.UTC()
		order.User = &user
		order.Products = []domain.Product{}
		orders = append(orders, &order)
		byID[order.ID] = &order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating order rows", slog.String("error", err.Error()))
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	if err := s.attachProducts(ctx, ids, byID); err != nil {
		log.Error("failed to load order products",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}

	log.Debug("orders listed",
		slog.Int64("user_id", userID),
		slog.Int("count", len(orders)))
	return orders, nil
}

func (s *PostgresOrderStore) attachProducts(
	ctx context.Context,
	orderIDs []int64,
	byID map[int64]*domain.Order,
) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT op.order_id, p.id, p.product_name, p.price
		FROM order_product op
		JOIN product p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY op.order_id, p.id
	`, orderIDs)
	if err != nil {
		return storeFault("order_product", "list", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var orderID int64
		var product domain.Product
		if err := rows.Scan(&orderID, &product.ID, &product.ProductName, &product.Price); err != nil {
			return err
		}
		if order, ok := byID[orderID]; ok {
			order.Products = append(order.Products, product)
		}
	}
	return rows.Err()
}

// ListProducts implements store.OrderStore.ListProducts
func (s *PostgresOrderStore) ListProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.product_name, p.price
		FROM order_product op
		JOIN product p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY p.id
	`, orderID)
	if err != nil {
		log.Error("failed to list order products",
			slog.String("error", err.Error()),
			slog.Int64("order_id", orderID))
		return nil, storeFault("order_product", "list", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.ProductName, &product.Price); err != nil {
			log.Error("failed to scan order product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating order product rows", slog.String("error", err.Error()))
		return nil, err
	}

	return products, nil
}

// AddProduct implements store.OrderStore.AddProduct
// The composite key makes a concurrent duplicate add lose cleanly.
func (s *PostgresOrderStore) AddProduct(ctx context.Context, orderID, productID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO order_product (order_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (order_id, product_id) DO NOTHING
	`, orderID, productID)
	if err != nil {
		log.Error("failed to add product to order",
			slog.String("error", err.Error()),
			slog.Int64("order_id", orderID),
			slog.Int64("product_id", productID))
		return false, storeFault("order_product", "insert", err)
	}

	added, err := affectedOne(result)
	if err != nil {
		return false, err
	}

	log.Debug("product added to order",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", productID),
		slog.Bool("added", added))
	return added, nil
}

// RemoveProduct implements store.OrderStore.RemoveProduct
func (s *PostgresOrderStore) RemoveProduct(ctx context.Context, orderID, productID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM order_product
		WHERE order_id = $1 AND product_id = $2
	`, orderID, productID)
	if err != nil {
		log.Error("failed to remove product from order",
			slog.String("error", err.Error()),
			slog.Int64("order_id", orderID),
			slog.Int64("product_id", productID))
		return false, storeFault("order_product", "delete", err)
	}

	removed, err := affectedOne(result)
	if err != nil {
		return false, err
	}

	log.Debug("product removed from order",
		slog.Int64("order_id", orderID),
		slog.Int64("product_id", productID),
		slog.Bool("removed", removed))
	return removed, nil
}

func affectedOne(result sql.Result) (bool, error) {
	err := CheckRowsAffected(result, nil)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

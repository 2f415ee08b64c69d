package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/phrazzld/shop-api/internal/service"
	"github.com/phrazzld/shop-api/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	migrator *postgres.Migrator

	userService    service.UserService
	productService service.ProductService
	orderService   service.OrderService
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	transactor := store.NewTransactor(db)

	userStore := postgres.NewPostgresUserStore(db, logger)
	productStore := postgres.NewPostgresProductStore(db, logger)
	orderStore := postgres.NewPostgresOrderStore(db, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		migrator:       postgres.NewMigrator(db, logger),
		userService:    service.NewUserService(userStore, transactor, logger),
		productService: service.NewProductService(productStore, transactor, logger),
		orderService:   service.NewOrderService(orderStore, userStore, productStore, transactor, logger),
	}

	logger.Info("application initialized")
	return app
}

// Run serves HTTP until ctx is canceled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database pool.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}

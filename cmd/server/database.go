package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/redact"
)

const pingTimeout = 5 * time.Second

// setupAppDatabase opens the connection pool, applies the configured pool
// limits and checks that the database answers. Returned errors have
// credentials masked since they end up on stderr.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", redact.Wrap(err))
	}

	configurePool(db, cfg.Database)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", redact.URL(cfg.Database.URL), redact.Wrap(err))
	}

	logger.Info("database connection established",
		slog.String("database", redact.URL(cfg.Database.URL)),
		slog.Int("max_open_conns", cfg.Database.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.Database.MaxIdleConns))
	return db, nil
}

func configurePool(db *sql.DB, cfg config.DatabaseConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DatabaseURLEnv names an existing database to use instead of a container.
const DatabaseURLEnv = "SHOP_TEST_DATABASE_URL"

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

const postgresImage = "postgres:16-alpine"

// Database is a migrated test database and the means to dispose of it.
type Database struct {
	DB  *sql.DB
	URL string

	terminate func(context.Context) error
}

// Start provides a migrated database: the one named by SHOP_TEST_DATABASE_URL,
// or a fresh PostgreSQL container.
func Start(ctx context.Context) (*Database, error) {
	dbURL := os.Getenv(DatabaseURLEnv)
	terminate := func(context.Context) error { return nil }

	if dbURL == "" {
		container, err := tcpostgres.Run(ctx,
			postgresImage,
			tcpostgres.WithDatabase("shop"),
			tcpostgres.WithUsername("shop"),
			tcpostgres.WithPassword("shop"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
		}
		terminate = func(ctx context.Context) error {
			return container.Terminate(ctx)
		}

		dbURL, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = terminate(ctx)
			return nil, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		_ = terminate(ctx)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, TestTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		_ = terminate(ctx)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := postgres.NewMigrator(db, slog.Default()).Up(ctx); err != nil {
		_ = db.Close()
		_ = terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{DB: db, URL: dbURL, terminate: terminate}, nil
}

// Close closes the pool and removes the container, if any.
func (d *Database) Close(ctx context.Context) error {
	return errors.Join(d.DB.Close(), d.terminate(ctx))
}

// RunMain starts the database, stores it in *target, runs the tests and
// tears everything down. Its result is the exit code for os.Exit.
func RunMain(m *testing.M, target **Database) int {
	ctx := context.Background()

	db, err := Start(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testdb: %v\n", err)
		return 1
	}
	*target = db

	code := m.Run()

	if err := db.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "testdb: cleanup failed: %v\n", err)
	}
	return code
}

// WithTx runs fn inside a transaction that is rolled back afterwards,
// so tests using it can run in parallel without seeing each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// Reset empties every application table and restarts the id sequences.
// Tests calling it must not run in parallel with other tests of the package.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx,
		`TRUNCATE order_product, "order", product, "user" RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to truncate tables")
}

package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its dialect, base FS and logger in package state.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf does not exit; goose still returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrator applies the embedded schema migrations with goose.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMigrator creates a Migrator for db.
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		db:     db,
		logger: logger.With(slog.String("component", "migrations")),
	}
}

// Up applies every pending migration. It is idempotent.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, "up", func(ctx context.Context) error {
		return goose.UpContext(ctx, m.db, migrationsDir)
	})
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, "down", func(ctx context.Context) error {
		return goose.DownContext(ctx, m.db, migrationsDir)
	})
}

// Status logs the applied state of every migration.
func (m *Migrator) Status(ctx context.Context) error {
	return m.run(ctx, "status", func(ctx context.Context) error {
		return goose.StatusContext(ctx, m.db, migrationsDir)
	})
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.run(ctx, "version", func(ctx context.Context) error {
		v, err := goose.GetDBVersionContext(ctx, m.db)
		version = v
		return err
	})
	return version, err
}

func (m *Migrator) run(ctx context.Context, command string, fn func(context.Context) error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	log := logger.FromContextOrDefault(ctx, m.logger).With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("command", command),
	)

	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	start := time.Now()
	log.Info("starting migration operation")

	if err := fn(ctx); err != nil {
		log.Error("migration operation failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migrate %s: %w", command, err)
	}

	log.Info("migration operation completed",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

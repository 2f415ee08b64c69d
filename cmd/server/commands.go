package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// newRootCmd builds the shopapi command tree.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "shopapi",
		Short: "Shop API - users, products and orders over HTTP",
		Long: `shopapi serves a JSON API over users, products and orders stored in
PostgreSQL, and manages the database schema.

Configuration comes from defaults, an optional config.yaml and SHOP_*
environment variables (for example SHOP_DATABASE_URL).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.yaml)")

	rootCmd.AddCommand(newServeCmd(&configPath), newMigrateCmd(&configPath))
	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := setupAppDatabase(ctx, cfg, log)
			if err != nil {
				return err
			}

			app := newApplication(cfg, log, db)
			defer app.cleanup()

			if cfg.Database.AutoMigrate {
				if err := app.migrator.Up(ctx); err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
			}

			return app.Run(ctx)
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or roll back the embedded schema migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back the most recent migration
  status   - Log the state of every migration
  version  - Print the current schema version`,
	}

	withMigrator := func(fn func(ctx context.Context, cmd *cobra.Command, m *postgres.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := setupAppDatabase(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("error closing database connection", slog.String("error", err.Error()))
				}
			}()

			return fn(ctx, cmd, postgres.NewMigrator(db, log))
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, _ *cobra.Command, m *postgres.Migrator) error {
				return m.Up(ctx)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, _ *cobra.Command, m *postgres.Migrator) error {
				return m.Down(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Log the state of every migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, _ *cobra.Command, m *postgres.Migrator) error {
				return m.Status(ctx)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, cmd *cobra.Command, m *postgres.Migrator) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}),
		},
	)

	return migrateCmd
}

// loadRuntime loads configuration and installs the structured logger.
func loadRuntime(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate))

	return cfg, log, nil
}

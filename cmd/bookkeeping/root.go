package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/migrations"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	flagUser string
)

var rootCmd = &cobra.Command{
	Use:           "bookkeeping",
	Short:         "Double-entry bookkeeping backend",
	Long:          "Keeps the entries of a book: validation of edited rows, running totals per account and ledger, settlement and reconciliation.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "cli", "User recorded in the audit fields")
}

// openBook connects to the configured database with its schema up to date.
// The returned func releases every connection.
func openBook(ctx context.Context) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if err := migratePostgres(ctx, migrations.Up); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), pool.Close, nil
	default:
		store, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite database opened.", slog.String("path", cfg.SQLitePath))
		closeStore := func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing database", slog.String("error", err.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(store), closeStore, nil
	}
}

func migratePostgres(ctx context.Context, dir migrations.Direction) error {
	db, err := database.OpenMigrationDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	return migrations.RunPostgres(db, dir, logger)
}

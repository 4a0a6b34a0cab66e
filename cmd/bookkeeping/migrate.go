package main

import (
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/migrations"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/sqlite"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, migrations.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration, dropping the book",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, migrations.Down)
	},
}

func runMigrations(cmd *cobra.Command, dir migrations.Direction) error {
	if cfg.DBDriver == config.DriverPostgres {
		return migratePostgres(cmd.Context(), dir)
	}
	// Opening the store applies the up migrations already.
	store, err := sqlite.Open(cfg.SQLitePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	if dir == migrations.Down {
		return store.Migrate(migrations.Down, logger)
	}
	return nil
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

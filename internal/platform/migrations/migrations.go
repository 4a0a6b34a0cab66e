// Package migrations embeds the schema of both supported databases and applies
// it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Direction selects which way the migrations are applied.
type Direction int

const (
	Up Direction = iota
	Down
)

// RunPostgres applies the postgres schema on db, opened with the pgx stdlib driver.
func RunPostgres(db *sql.DB, dir Direction, logger *slog.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	return run("postgres", driver, dir, logger)
}

// RunSQLite applies the sqlite schema on db, opened with the modernc driver.
func RunSQLite(db *sql.DB, dir Direction, logger *slog.Logger) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite driver instance for migrations: %w", err)
	}
	return run("sqlite", driver, dir, logger)
}

func run(name string, driver database.Driver, dir Direction, logger *slog.Logger) error {
	source, err := iofs.New(files, name)
	if err != nil {
		return fmt.Errorf("could not open embedded %s migrations: %w", name, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply %s migrations: %w", name, err)
	}

	// Closing the migrate instance would close db too; only the source is released here.
	if serr := source.Close(); serr != nil {
		return fmt.Errorf("migration source error: %w", serr)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.String("driver", name))
	} else {
		logger.Info("Database migrations applied successfully.", slog.String("driver", name))
	}
	return nil
}

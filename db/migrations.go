package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// NewMigrator returns a goose provider over the embedded migrations for driver.
func NewMigrator(db *sql.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	case DriverPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("locating %s migrations: %w", driver, err)
	}
	return goose.NewProvider(dialect, db, fsys)
}

// Migrate applies all pending migrations. Safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	slog.Info("running database migrations")

	p, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}

	slog.Info("database migrations complete")
	return nil
}

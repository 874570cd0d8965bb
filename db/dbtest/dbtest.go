// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/bimmills/portal/config"
	"github.com/bimmills/portal/db"
)

// Open returns a migrated SQLite database stored under t.TempDir. It is closed
// when the test finishes.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	database, err := db.Open(config.DatabaseConfig{
		Driver: db.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.Migrate(context.Background(), database, db.DriverSQLite); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return database
}

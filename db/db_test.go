package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bimmills/portal/config"
	"github.com/bimmills/portal/db"
	"github.com/bimmills/portal/db/dbtest"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := db.Open(config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "portal.db")
	database, err := db.Open(config.DatabaseConfig{Driver: db.DriverSQLite, DSN: path})
	require.NoError(t, err)
	defer database.Close()

	assert.FileExists(t, path)
}

func TestMigrateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)

	require.NoError(t, db.Migrate(ctx, database, db.DriverSQLite))

	p, err := db.NewMigrator(database, db.DriverSQLite)
	require.NoError(t, err)
	statuses, err := p.Status(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.Equal(t, goose.StateApplied, s.State, "migration %d", s.Source.Version)
	}

	for _, table := range []string{"orders", "sales", "invoices", "vendors", "vendor_payments", "fabrics", "readymade_products", "employees", "enquiries", "users", "admins"} {
		var n int
		require.NoError(t, database.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n), table)
	}
}

func TestMigrateDown(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)

	p, err := db.NewMigrator(database, db.DriverSQLite)
	require.NoError(t, err)
	_, err = p.Down(ctx)
	require.NoError(t, err)

	_, err = database.ExecContext(ctx, "SELECT COUNT(*) FROM orders")
	assert.Error(t, err)
}

func TestSeedCatalogue(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)

	n, err := db.SeedCatalogue(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = db.SeedCatalogue(ctx, database)
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int
	require.NoError(t, database.QueryRowContext(ctx, "SELECT COUNT(*) FROM fabrics").Scan(&count))
	assert.Equal(t, 6, count)
}

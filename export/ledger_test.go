package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/bimmills/portal/db/dbtest"
	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T, database *sql.DB) {
	t.Helper()
	ctx := context.Background()
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	entries := []struct {
		amount float64
		day    string
		at     time.Time
	}{
		{500, "Wednesday", monday.AddDate(0, 0, 2)},
		{250, "Monday", monday},
		{100, "Monday", monday.Add(time.Hour)},
	}
	for i, e := range entries {
		var orderID int
		require.NoError(t, database.QueryRowContext(ctx,
			"INSERT INTO orders (user_name, product_name, amount, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
			"Asha", "Cotton Saree", e.amount, e.at).Scan(&orderID))
		_, err := database.ExecContext(ctx,
			"INSERT INTO sales (date, amount, day, transaction_id, order_id) VALUES ($1, $2, $3, $4, $5)",
			e.at, e.amount, e.day, "TXN-"+string(rune('a'+i)), orderID)
		require.NoError(t, err)
	}

	_, err := database.ExecContext(ctx, `INSERT INTO invoices (invoice_number, order_id, customer_name, subtotal,
		tax_rate, tax_amount, total_amount, issue_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		"INV-20260302-ABCDEF12", 1, "Asha", 500.0, 18.0, 90.0, 590.0, monday, monday)
	require.NoError(t, err)
}

func TestLedger(t *testing.T) {
	database := dbtest.Open(t)
	seedLedger(t, database)
	path := filepath.Join(t.TempDir(), "ledger.duckdb")

	sum, err := Ledger(context.Background(), database, path)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"orders": 3, "sales": 3, "invoices": 1}, sum.Rows)
	assert.Equal(t, []models.DaySales{
		{Day: "Monday", Amount: 350},
		{Day: "Wednesday", Amount: 500},
	}, sum.RevenueDay)
	assert.FileExists(t, path)

	// Re-exporting replaces the file instead of failing on existing tables.
	sum, err = Ledger(context.Background(), database, path)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Rows["sales"])
}

func TestLedgerEmpty(t *testing.T) {
	database := dbtest.Open(t)

	sum, err := Ledger(context.Background(), database, filepath.Join(t.TempDir(), "empty.duckdb"))
	require.NoError(t, err)
	assert.Zero(t, sum.Rows["orders"])
	assert.Empty(t, sum.RevenueDay)
}

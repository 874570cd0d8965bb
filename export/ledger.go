// Package export copies the billing tables into a DuckDB file for offline
// analysis.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/bimmills/portal/models"
)

type table struct {
	name    string
	columns []string
	ddl     string
}

var tables = []table{
	{
		name: "orders",
		columns: []string{"id", "user_id", "user_name", "user_email", "user_phone", "product_id",
			"readymade_product_id", "product_name", "quantity", "quality", "amount", "created_at",
			"cancellation_requested"},
		ddl: `CREATE TABLE orders (
			id BIGINT PRIMARY KEY, user_id BIGINT, user_name VARCHAR, user_email VARCHAR,
			user_phone VARCHAR, product_id BIGINT, readymade_product_id BIGINT, product_name VARCHAR,
			quantity VARCHAR, quality VARCHAR, amount DOUBLE, created_at TIMESTAMP,
			cancellation_requested BIGINT)`,
	},
	{
		name:    "sales",
		columns: []string{"id", "date", "amount", "day", "transaction_id", "order_id"},
		ddl: `CREATE TABLE sales (
			id BIGINT PRIMARY KEY, date TIMESTAMP, amount DOUBLE, day VARCHAR,
			transaction_id VARCHAR, order_id BIGINT)`,
	},
	{
		name: "invoices",
		columns: []string{"id", "invoice_number", "order_id", "customer_name", "customer_email",
			"product_name", "subtotal", "tax_rate", "tax_amount", "total_amount", "payment_status",
			"payment_method", "issue_date", "due_date", "created_at"},
		ddl: `CREATE TABLE invoices (
			id BIGINT PRIMARY KEY, invoice_number VARCHAR, order_id BIGINT, customer_name VARCHAR,
			customer_email VARCHAR, product_name VARCHAR, subtotal DOUBLE, tax_rate DOUBLE,
			tax_amount DOUBLE, total_amount DOUBLE, payment_status VARCHAR, payment_method VARCHAR,
			issue_date TIMESTAMP, due_date TIMESTAMP, created_at TIMESTAMP)`,
	},
}

// Summary reports what an export wrote.
type Summary struct {
	Rows       map[string]int
	RevenueDay []models.DaySales
}

// Ledger writes orders, sales and invoices from src into a fresh DuckDB
// database at path and returns revenue per weekday computed there. An
// existing file at path is replaced.
func Ledger(ctx context.Context, src *sql.DB, path string) (Summary, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return Summary{}, fmt.Errorf("removing old export: %w", err)
	}

	dst, err := sql.Open("duckdb", path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening duckdb: %w", err)
	}
	defer dst.Close()

	sum := Summary{Rows: map[string]int{}}
	for _, t := range tables {
		n, err := copyTable(ctx, src, dst, t)
		if err != nil {
			return Summary{}, fmt.Errorf("exporting %s: %w", t.name, err)
		}
		sum.Rows[t.name] = n
		slog.Info("table exported", "table", t.name, "rows", n)
	}

	sum.RevenueDay, err = revenueByDay(ctx, dst)
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func copyTable(ctx context.Context, src, dst *sql.DB, t table) (int, error) {
	if _, err := dst.ExecContext(ctx, t.ddl); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	cols := strings.Join(t.columns, ", ")
	rows, err := src.QueryContext(ctx, "SELECT "+cols+" FROM "+t.name+" ORDER BY id")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	tx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	marks := make([]string, len(t.columns))
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+t.name+" ("+cols+") VALUES ("+strings.Join(marks, ", ")+")")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	vals := make([]any, len(t.columns))
	ptrs := make([]any, len(t.columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return 0, err
		}
		for i, v := range vals {
			// TEXT may come back as raw bytes depending on the source driver.
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		if _, err := stmt.ExecContext(ctx, vals...); err != nil {
			return 0, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func revenueByDay(ctx context.Context, dst *sql.DB) ([]models.DaySales, error) {
	rows, err := dst.QueryContext(ctx, `SELECT COALESCE(day, ''), SUM(amount) FROM sales
		GROUP BY day
		ORDER BY COALESCE(list_position(['Monday', 'Tuesday', 'Wednesday', 'Thursday', 'Friday', 'Saturday', 'Sunday'], day), 8), day`)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}
	defer rows.Close()

	out := []models.DaySales{}
	for rows.Next() {
		var d models.DaySales
		if err := rows.Scan(&d.Day, &d.Amount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

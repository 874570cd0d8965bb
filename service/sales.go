package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/bimmills/portal/models"
)

// weekOrder ranks weekday labels Monday first; unknown labels sort last.
var weekOrder = map[string]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3,
	"Friday": 4, "Saturday": 5, "Sunday": 6,
}

// Sales is a read-only view over the sales ledger.
type Sales struct {
	db *sql.DB
}

func NewSales(db *sql.DB) *Sales {
	return &Sales{db: db}
}

// List returns every ledger entry, newest first.
func (s *Sales) List(ctx context.Context) ([]models.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, amount, date, day, transaction_id, order_id
		FROM sales ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.Amount, &sale.Date, &sale.Day, &sale.TransactionID, &sale.OrderID); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// Analytics sums ledger revenue, counts orders and groups revenue by the
// weekday label recorded at sale time.
func (s *Sales) Analytics(ctx context.Context) (models.Analytics, error) {
	a := models.Analytics{SalesByDay: []models.DaySales{}, Message: "Analytics fetched successfully"}

	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(amount), 0) FROM sales").Scan(&a.TotalRevenue); err != nil {
		return a, fmt.Errorf("summing sales: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&a.TotalOrders); err != nil {
		return a, fmt.Errorf("counting orders: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT COALESCE(day, ''), COALESCE(SUM(amount), 0) FROM sales GROUP BY day")
	if err != nil {
		return a, fmt.Errorf("grouping sales by day: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.DaySales
		if err := rows.Scan(&d.Day, &d.Amount); err != nil {
			return a, fmt.Errorf("scanning day total: %w", err)
		}
		a.SalesByDay = append(a.SalesByDay, d)
	}
	if err := rows.Err(); err != nil {
		return a, err
	}

	sort.SliceStable(a.SalesByDay, func(i, j int) bool {
		return rank(a.SalesByDay[i].Day) < rank(a.SalesByDay[j].Day)
	})
	return a, nil
}

// Usage reports order volume for the admin billing page.
func (s *Sales) Usage(ctx context.Context) (models.UsageStats, error) {
	var u models.UsageStats
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM orders").
		Scan(&u.TotalOrdersProcessed, &u.TotalRevenueProcessed)
	if err != nil {
		return u, fmt.Errorf("computing usage: %w", err)
	}
	return u, nil
}

func rank(day string) int {
	if r, ok := weekOrder[day]; ok {
		return r
	}
	return len(weekOrder)
}

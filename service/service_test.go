package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bimmills/portal/db/dbtest"
	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) OrderPlaced(o models.Order)    { m.Called(o) }
func (m *mockNotifier) OrderCancelled(o models.Order) { m.Called(o) }

// fixedNow is a Wednesday.
var fixedNow = time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newOrders(t *testing.T) (*Orders, *mockNotifier, *sql.DB) {
	t.Helper()
	database := dbtest.Open(t)
	n := &mockNotifier{}
	s := NewOrders(database, n)
	s.now = func() time.Time { return fixedNow }
	return s, n, database
}

func count(t *testing.T, database *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func insertReadymade(t *testing.T, database *sql.DB) int {
	t.Helper()
	var id int
	err := database.QueryRowContext(context.Background(),
		"INSERT INTO readymade_products (name, quantity, quality, price) VALUES ($1, $2, $3, $4) RETURNING id",
		"Cotton Saree", "1 unit", "Premium", 1200).Scan(&id)
	require.NoError(t, err)
	return id
}

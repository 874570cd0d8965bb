package service

import (
	"context"
	"testing"
	"time"

	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesAnalytics(t *testing.T) {
	ctx := context.Background()
	orders, _, database := newOrders(t)
	sales := NewSales(database)

	empty, err := sales.Analytics(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRevenue)
	assert.Empty(t, empty.SalesByDay)

	_, err = orders.Create(ctx, models.OrderInput{Amount: ptr(100.0)})
	require.NoError(t, err)
	_, err = orders.Create(ctx, models.OrderInput{Amount: ptr(50.0)})
	require.NoError(t, err)
	orders.now = func() time.Time { return fixedNow.AddDate(0, 0, -2) } // Monday
	_, err = orders.Create(ctx, models.OrderInput{Amount: ptr(25.0)})
	require.NoError(t, err)
	_, err = orders.Create(ctx, models.OrderInput{})
	require.NoError(t, err)

	a, err := sales.Analytics(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 175.0, a.TotalRevenue, 1e-6)
	assert.Equal(t, 4, a.TotalOrders)
	assert.Equal(t, []models.DaySales{{Day: "Monday", Amount: 25}, {Day: "Wednesday", Amount: 150}}, a.SalesByDay)

	list, err := sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Wednesday", *list[0].Day)

	usage, err := sales.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, usage.TotalOrdersProcessed)
	assert.InDelta(t, 175.0, usage.TotalRevenueProcessed, 1e-6)
}

func TestDocumentNumbers(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Regexp(t, `^VP-20260102-[0-9A-F]{8}$`, DocumentNumber(VendorPaymentPrefix, now))
	assert.NotEqual(t, DocumentNumber(InvoicePrefix, now), DocumentNumber(InvoicePrefix, now))
	assert.Equal(t, "TXN-7-1767312000000000", TransactionID(7, now))
}

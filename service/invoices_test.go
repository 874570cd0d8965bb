package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoiceNumberRe = regexp.MustCompile(`^INV-20260304-[0-9A-F]{8}$`)

func newInvoices(t *testing.T) (*Orders, *Invoices) {
	t.Helper()
	orders, _, database := newOrders(t)
	inv := NewInvoices(database)
	inv.now = orders.now
	return orders, inv
}

func TestInvoiceTotals(t *testing.T) {
	tax, total := InvoiceTotals(1000, 18)
	assert.InDelta(t, 180.0, tax, 1e-6)
	assert.InDelta(t, 1180.0, total, 1e-6)

	tax, total = InvoiceTotals(999.99, 12.5)
	assert.InDelta(t, 124.99875, tax, 1e-6)
	assert.InDelta(t, 1124.98875, total, 1e-6)

	tax, total = InvoiceTotals(0, 18)
	assert.Zero(t, tax)
	assert.Zero(t, total)
}

func TestGenerateInvoice(t *testing.T) {
	ctx := context.Background()
	orders, inv := newInvoices(t)

	order, err := orders.Create(ctx, models.OrderInput{
		UserPhone:   ptr("9876543210"),
		ProductName: ptr("Cotton"),
		Quantity:    ptr("5m"),
		Amount:      ptr(1000.0),
	})
	require.NoError(t, err)

	got, err := inv.Generate(ctx, models.InvoiceInput{OrderID: order.ID, TaxRate: ptr(18.0), Notes: ptr("paid at counter")})
	require.NoError(t, err)
	assert.Regexp(t, invoiceNumberRe, got.InvoiceNumber)
	assert.Equal(t, order.ID, got.OrderID)
	assert.Equal(t, "Guest Customer", got.CustomerName)
	assert.Equal(t, "9876543210", *got.CustomerPhone)
	assert.Equal(t, "Cotton", *got.ProductName)
	assert.InDelta(t, 1000.0, got.Subtotal, 1e-6)
	assert.InDelta(t, 180.0, got.TaxAmount, 1e-6)
	assert.InDelta(t, 1180.0, got.TotalAmount, 1e-6)
	assert.Equal(t, "Pending", got.PaymentStatus)
	assert.Nil(t, got.DueDate)

	second, err := inv.Generate(ctx, models.InvoiceInput{OrderID: order.ID, PaymentStatus: ptr("Paid")})
	require.NoError(t, err)
	assert.NotEqual(t, got.InvoiceNumber, second.InvoiceNumber)
	assert.Equal(t, "Paid", second.PaymentStatus)
	assert.Zero(t, second.TaxAmount)

	after, err := orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, after)

	byOrder, err := inv.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, byOrder, 2)
}

func TestGenerateInvoiceMissingOrder(t *testing.T) {
	ctx := context.Background()
	_, inv := newInvoices(t)

	_, err := inv.Generate(ctx, models.InvoiceInput{OrderID: 404})
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := inv.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListInvoicesPaging(t *testing.T) {
	ctx := context.Background()
	orders, inv := newInvoices(t)

	order, err := orders.Create(ctx, models.OrderInput{Amount: ptr(50.0)})
	require.NoError(t, err)
	var ids []int
	for range 3 {
		got, err := inv.Generate(ctx, models.InvoiceInput{OrderID: order.ID})
		require.NoError(t, err)
		ids = append(ids, got.ID)
	}

	page, err := inv.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[1], page[1].ID)

	page, err = inv.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)

	none, err := inv.ListByOrder(ctx, order.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	ctx := context.Background()
	orders, inv := newInvoices(t)

	order, err := orders.Create(ctx, models.OrderInput{UserName: ptr("Ravi"), Amount: ptr(10.0)})
	require.NoError(t, err)
	got, err := inv.Generate(ctx, models.InvoiceInput{OrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", got.CustomerName)

	updated, err := inv.UpdateStatus(ctx, got.ID, "Refunded")
	require.NoError(t, err)
	assert.Equal(t, "Refunded", updated.PaymentStatus)
	assert.Equal(t, got.InvoiceNumber, updated.InvoiceNumber)

	_, err = inv.UpdateStatus(ctx, 999, "Paid")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = inv.UpdateStatus(ctx, got.ID, "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = inv.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

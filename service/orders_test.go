package service

import (
	"context"
	"testing"

	"github.com/bimmills/portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderWritesLedgerEntry(t *testing.T) {
	ctx := context.Background()
	s, n, database := newOrders(t)
	n.On("OrderPlaced", mock.AnythingOfType("models.Order")).Once()

	order, err := s.Create(ctx, models.OrderInput{
		UserName:    ptr("Asha"),
		UserEmail:   ptr("a@x.com"),
		ProductName: ptr("Linen"),
		Quantity:    ptr("10m"),
		Amount:      ptr(2500.0),
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CancellationRequested)
	assert.Equal(t, 2500.0, order.AmountOrZero())

	var (
		amount float64
		day    string
		txn    string
	)
	err = database.QueryRowContext(ctx, "SELECT amount, day, transaction_id FROM sales WHERE order_id = $1", order.ID).
		Scan(&amount, &day, &txn)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, amount)
	assert.Equal(t, "Wednesday", day)
	assert.Equal(t, TransactionID(order.ID, fixedNow), txn)
	assert.Equal(t, 1, count(t, database, "SELECT COUNT(*) FROM sales"))

	n.AssertExpectations(t)
}

func TestCreateOrderWithoutEmailSkipsNotification(t *testing.T) {
	ctx := context.Background()
	s, n, database := newOrders(t)

	order, err := s.Create(ctx, models.OrderInput{UserName: ptr("Walk-in")})
	require.NoError(t, err)
	assert.Nil(t, order.Amount)

	var amount float64
	require.NoError(t, database.QueryRowContext(ctx, "SELECT amount FROM sales WHERE order_id = $1", order.ID).Scan(&amount))
	assert.Zero(t, amount)

	n.AssertNotCalled(t, "OrderPlaced", mock.Anything)
}

func TestCreateOrderMissingReadymadeProduct(t *testing.T) {
	ctx := context.Background()
	s, n, database := newOrders(t)

	_, err := s.Create(ctx, models.OrderInput{UserEmail: ptr("a@x.com"), ReadymadeProductID: ptr(999)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, count(t, database, "SELECT COUNT(*) FROM orders"))
	assert.Zero(t, count(t, database, "SELECT COUNT(*) FROM sales"))
	n.AssertNotCalled(t, "OrderPlaced", mock.Anything)
}

func TestCreateOrderRollsBackWhenLedgerInsertFails(t *testing.T) {
	ctx := context.Background()
	s, n, database := newOrders(t)

	// The next order gets id 1, so its ledger row collides with this one.
	_, err := database.ExecContext(ctx,
		"INSERT INTO sales (date, amount, day, transaction_id) VALUES ($1, $2, $3, $4)",
		fixedNow, 10.0, "Wednesday", TransactionID(1, fixedNow))
	require.NoError(t, err)

	_, err = s.Create(ctx, models.OrderInput{UserEmail: ptr("a@x.com"), Amount: ptr(250.0)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.Zero(t, count(t, database, "SELECT COUNT(*) FROM orders"))
	assert.Equal(t, 1, count(t, database, "SELECT COUNT(*) FROM sales"))
	assert.Zero(t, count(t, database, "SELECT COUNT(*) FROM sales WHERE order_id IS NOT NULL"))
	n.AssertNotCalled(t, "OrderPlaced", mock.Anything)
}

func TestCreateOrderZeroReadymadeProductIsIgnored(t *testing.T) {
	ctx := context.Background()
	s, _, database := newOrders(t)

	order, err := s.Create(ctx, models.OrderInput{ReadymadeProductID: ptr(0), Amount: ptr(80.0)})
	require.NoError(t, err)
	assert.Nil(t, order.ReadymadeProductID)
	assert.Equal(t, 1, count(t, database, "SELECT COUNT(*) FROM sales WHERE order_id = $1", order.ID))
}

func TestCreateOrderWithReadymadeProduct(t *testing.T) {
	ctx := context.Background()
	s, n, database := newOrders(t)
	n.On("OrderPlaced", mock.Anything).Once()
	productID := insertReadymade(t, database)

	order, err := s.Create(ctx, models.OrderInput{
		UserEmail:          ptr("a@x.com"),
		ReadymadeProductID: ptr(productID),
		Amount:             ptr(-5.0),
	})
	require.NoError(t, err)
	require.NotNil(t, order.ReadymadeProductID)
	assert.Equal(t, productID, *order.ReadymadeProductID)
	assert.Equal(t, -5.0, order.AmountOrZero())
}

func TestListAndGetOrders(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newOrders(t)

	orders, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	first, err := s.Create(ctx, models.OrderInput{ProductName: ptr("first")})
	require.NoError(t, err)
	second, err := s.Create(ctx, models.OrderInput{ProductName: ptr("second")})
	require.NoError(t, err)

	orders, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", *got.ProductName)

	_, err = s.Get(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestCancellation(t *testing.T) {
	ctx := context.Background()
	s, n, _ := newOrders(t)
	n.On("OrderPlaced", mock.Anything)

	order, err := s.Create(ctx, models.OrderInput{UserEmail: ptr("a@x.com"), Amount: ptr(100.0)})
	require.NoError(t, err)

	_, err = s.RequestCancellation(ctx, order.ID, "b@x.com")
	assert.ErrorIs(t, err, ErrForbidden)
	got, err := s.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, got.CancellationRequested)

	_, err = s.RequestCancellation(ctx, order.ID, "A@x.com")
	assert.ErrorIs(t, err, ErrForbidden, "comparison is case sensitive")

	res, err := s.RequestCancellation(ctx, order.ID, "a@x.com")
	require.NoError(t, err)
	assert.True(t, res.CancellationRequested)
	assert.Equal(t, order.ID, res.ID)

	got, err = s.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.CancellationRequested)

	_, err = s.RequestCancellation(ctx, 999, "a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	n.AssertNotCalled(t, "OrderCancelled", mock.Anything)
}

func TestRequestCancellationWithoutStoredEmail(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newOrders(t)

	order, err := s.Create(ctx, models.OrderInput{})
	require.NoError(t, err)

	_, err = s.RequestCancellation(ctx, order.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteOrderRemovesLedgerEntry(t *testing.T) {
	ctx := context.Background()
	s, n, database := newOrders(t)
	n.On("OrderPlaced", mock.Anything)
	n.On("OrderCancelled", mock.MatchedBy(func(o models.Order) bool { return o.Email() == "a@x.com" })).Once()

	order, err := s.Create(ctx, models.OrderInput{
		UserName:    ptr("Asha"),
		UserEmail:   ptr("a@x.com"),
		ProductName: ptr("Silk"),
		Amount:      ptr(900.0),
	})
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, deleted.ID)
	assert.Equal(t, "Silk", *deleted.ProductName)
	assert.Equal(t, "Order cancelled successfully", deleted.Message)

	_, err = s.Get(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, count(t, database, "SELECT COUNT(*) FROM sales WHERE order_id = $1", order.ID))

	_, err = s.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n.AssertExpectations(t)
}

func TestDeleteOrderKeepsInvoices(t *testing.T) {
	ctx := context.Background()
	s, _, database := newOrders(t)
	inv := NewInvoices(database)

	order, err := s.Create(ctx, models.OrderInput{Amount: ptr(10.0)})
	require.NoError(t, err)
	_, err = inv.Generate(ctx, models.InvoiceInput{OrderID: order.ID})
	require.NoError(t, err)

	_, err = s.Delete(ctx, order.ID)
	require.NoError(t, err)

	invoices, err := inv.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

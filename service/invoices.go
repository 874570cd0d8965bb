package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bimmills/portal/models"
	"github.com/shopspring/decimal"
)

const (
	guestCustomer       = "Guest Customer"
	defaultInvoiceLimit = 100
)

const invoiceSelectQuery = `SELECT id, invoice_number, order_id, customer_name, customer_email,
		customer_address, customer_phone, product_name, quantity, quality, subtotal, tax_rate,
		tax_amount, total_amount, payment_status, payment_method, issue_date, due_date, notes, created_at
		FROM invoices`

func scanInvoice(s scanner) (models.Invoice, error) {
	var inv models.Invoice
	err := s.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerName, &inv.CustomerEmail,
		&inv.CustomerAddress, &inv.CustomerPhone, &inv.ProductName, &inv.Quantity, &inv.Quality,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount, &inv.PaymentStatus,
		&inv.PaymentMethod, &inv.IssueDate, &inv.DueDate, &inv.Notes, &inv.CreatedAt)
	return inv, err
}

// InvoiceTotals returns tax_amount = subtotal * rate / 100 and
// total = subtotal + tax_amount.
func InvoiceTotals(subtotal, rate float64) (tax, total float64) {
	sub := decimal.NewFromFloat(subtotal)
	t := sub.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100))
	return t.InexactFloat64(), sub.Add(t).InexactFloat64()
}

// Invoices derives billing documents from orders. Orders are only read.
type Invoices struct {
	db  *sql.DB
	now func() time.Time
}

func NewInvoices(db *sql.DB) *Invoices {
	return &Invoices{db: db, now: time.Now}
}

// Generate creates an invoice that snapshots the order's customer and product
// fields. Several invoices may exist for one order.
func (s *Invoices) Generate(ctx context.Context, in models.InvoiceInput) (models.Invoice, error) {
	order, err := getOrder(ctx, s.db, in.OrderID)
	if err != nil {
		return models.Invoice{}, err
	}

	subtotal := order.AmountOrZero()
	rate := in.Rate()
	tax, total := InvoiceTotals(subtotal, rate)

	customer := guestCustomer
	if order.UserName != nil && *order.UserName != "" {
		customer = *order.UserName
	}

	due := in.DueDate.Ptr()

	now := s.now().UTC()
	var id int
	err = s.db.QueryRowContext(ctx, `INSERT INTO invoices (invoice_number, order_id, customer_name, customer_email,
		customer_address, customer_phone, product_name, quantity, quality, subtotal, tax_rate, tax_amount,
		total_amount, payment_status, payment_method, issue_date, due_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`,
		DocumentNumber(InvoicePrefix, now), order.ID, customer, order.UserEmail,
		order.UserAddress, order.UserPhone, order.ProductName, order.Quantity, order.Quality,
		subtotal, rate, tax, total, in.Status(), in.PaymentMethod, now, due, in.Notes, now).Scan(&id)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("inserting invoice for order %d: %w", order.ID, err)
	}

	slog.Info("invoice generated", "invoice_id", id, "order_id", order.ID, "total", total)
	return s.Get(ctx, id)
}

// List returns invoices newest first. A non-positive limit means the default.
func (s *Invoices) List(ctx context.Context, skip, limit int) ([]models.Invoice, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultInvoiceLimit
	}
	return s.query(ctx, invoiceSelectQuery+" ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2", limit, skip)
}

func (s *Invoices) Get(ctx context.Context, id int) (models.Invoice, error) {
	inv, err := scanInvoice(s.db.QueryRowContext(ctx, invoiceSelectQuery+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return inv, NotFound("Invoice")
	}
	if err != nil {
		return inv, fmt.Errorf("loading invoice %d: %w", id, err)
	}
	return inv, nil
}

// ListByOrder returns every invoice generated for the order, oldest first.
// The order itself need not exist any more.
func (s *Invoices) ListByOrder(ctx context.Context, orderID int) ([]models.Invoice, error) {
	return s.query(ctx, invoiceSelectQuery+" WHERE order_id = $1 ORDER BY id", orderID)
}

// UpdateStatus sets payment_status to any non-empty value.
func (s *Invoices) UpdateStatus(ctx context.Context, id int, status string) (models.Invoice, error) {
	if status == "" {
		return models.Invoice{}, Invalid("status is required")
	}
	res, err := s.db.ExecContext(ctx, "UPDATE invoices SET payment_status = $1 WHERE id = $2", status, id)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("updating invoice %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Invoice{}, NotFound("Invoice")
	}
	return s.Get(ctx, id)
}

func (s *Invoices) query(ctx context.Context, query string, args ...any) ([]models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

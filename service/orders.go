package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bimmills/portal/models"
)

// Notifier receives order events after they are committed. Implementations
// must return without waiting on delivery.
type Notifier interface {
	OrderPlaced(order models.Order)
	OrderCancelled(order models.Order)
}

const orderSelectQuery = `SELECT id, user_id, user_name, user_email, user_phone, user_address,
		product_id, readymade_product_id, product_name, quantity, quality, amount,
		created_at, cancellation_requested
		FROM orders`

func scanOrder(s scanner) (models.Order, error) {
	var o models.Order
	var cancel int64
	err := s.Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.UserPhone, &o.UserAddress,
		&o.ProductID, &o.ReadymadeProductID, &o.ProductName, &o.Quantity, &o.Quality, &o.Amount,
		&o.CreatedAt, &cancel)
	o.CancellationRequested = cancel != 0
	return o, err
}

func getOrder(ctx context.Context, q querier, id int) (models.Order, error) {
	o, err := scanOrder(q.QueryRowContext(ctx, orderSelectQuery+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return o, NotFound("Order")
	}
	if err != nil {
		return o, fmt.Errorf("loading order %d: %w", id, err)
	}
	return o, nil
}

// Orders runs the order lifecycle: checkout, cancellation requests and
// administrative deletion. Each write is one transaction covering the order
// and its sales-ledger entry.
type Orders struct {
	db     *sql.DB
	notify Notifier
	now    func() time.Time
}

func NewOrders(db *sql.DB, notify Notifier) *Orders {
	return &Orders{db: db, notify: notify, now: time.Now}
}

// Create stores the order and its ledger entry, then schedules a confirmation
// email when the customer gave one.
func (s *Orders) Create(ctx context.Context, in models.OrderInput) (models.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	// Zero means no ready-made product.
	if in.ReadymadeProductID != nil && *in.ReadymadeProductID == 0 {
		in.ReadymadeProductID = nil
	}
	if in.ReadymadeProductID != nil {
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM readymade_products WHERE id = $1", *in.ReadymadeProductID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, NotFound("Product")
		}
		if err != nil {
			return models.Order{}, fmt.Errorf("checking readymade product: %w", err)
		}
	}

	now := s.now().UTC()
	var id int
	err = tx.QueryRowContext(ctx, `INSERT INTO orders (user_id, user_name, user_email, user_phone, user_address,
		product_id, readymade_product_id, product_name, quantity, quality, amount, created_at, cancellation_requested)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0) RETURNING id`,
		in.UserID, in.UserName, in.UserEmail, in.UserPhone, in.UserAddress,
		in.ProductID, in.ReadymadeProductID, in.ProductName, in.Quantity, in.Quality, in.Amount, now).Scan(&id)
	if err != nil {
		return models.Order{}, fmt.Errorf("inserting order: %w", err)
	}

	amount := 0.0
	if in.Amount != nil {
		amount = *in.Amount
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO sales (date, amount, day, transaction_id, order_id)
		VALUES ($1, $2, $3, $4, $5)`,
		now, amount, now.Weekday().String(), TransactionID(id, now), id)
	if err != nil {
		return models.Order{}, fmt.Errorf("inserting sale for order %d: %w", id, err)
	}

	order, err := getOrder(ctx, tx, id)
	if err != nil {
		return models.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("commit order: %w", err)
	}

	slog.Info("order created", "order_id", order.ID, "amount", amount)
	if order.Email() != "" {
		s.notify.OrderPlaced(order)
	}
	return order, nil
}

// List returns all orders, newest first.
func (s *Orders) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, orderSelectQuery+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Orders) Get(ctx context.Context, id int) (models.Order, error) {
	return getOrder(ctx, s.db, id)
}

// RequestCancellation flags the order when email matches the stored customer
// email exactly. The order and its ledger entry are left in place.
func (s *Orders) RequestCancellation(ctx context.Context, id int, email string) (models.CancellationResult, error) {
	order, err := getOrder(ctx, s.db, id)
	if err != nil {
		return models.CancellationResult{}, err
	}
	if order.UserEmail == nil || *order.UserEmail != email {
		return models.CancellationResult{}, Forbidden("Email does not match order")
	}

	res, err := s.db.ExecContext(ctx, "UPDATE orders SET cancellation_requested = 1 WHERE id = $1", id)
	if err != nil {
		return models.CancellationResult{}, fmt.Errorf("flagging order %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.CancellationResult{}, NotFound("Order")
	}

	slog.Info("order cancellation requested", "order_id", id)
	return models.CancellationResult{
		ID:                    id,
		Message:               "Cancellation request submitted. Admin will process your request shortly.",
		CancellationRequested: true,
	}, nil
}

// Delete removes the order and its ledger entries in one transaction, then
// schedules a cancellation email when the order carried one.
func (s *Orders) Delete(ctx context.Context, id int) (models.DeletedOrder, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.DeletedOrder{}, fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	order, err := getOrder(ctx, tx, id)
	if err != nil {
		return models.DeletedOrder{}, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sales WHERE order_id = $1", id); err != nil {
		return models.DeletedOrder{}, fmt.Errorf("deleting sales for order %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return models.DeletedOrder{}, fmt.Errorf("deleting order %d: %w", id, err)
	}
	// A concurrent delete may have won between the read and this statement.
	if n, _ := res.RowsAffected(); n == 0 {
		return models.DeletedOrder{}, NotFound("Order")
	}
	if err := tx.Commit(); err != nil {
		return models.DeletedOrder{}, fmt.Errorf("commit order delete: %w", err)
	}

	slog.Info("order deleted", "order_id", id)
	if order.Email() != "" {
		s.notify.OrderCancelled(order)
	}
	return models.DeletedOrder{
		ID:          order.ID,
		UserName:    order.UserName,
		UserEmail:   order.UserEmail,
		UserPhone:   order.UserPhone,
		ProductName: order.ProductName,
		Message:     "Order cancelled successfully",
	}, nil
}

package models

import "time"

// Order is a customer purchase. Customer and product fields are copied at
// checkout and are not kept in sync with the referenced records.
type Order struct {
	ID                    int       `json:"id"`
	UserID                *int      `json:"user_id"`
	UserName              *string   `json:"user_name"`
	UserEmail             *string   `json:"user_email"`
	UserPhone             *string   `json:"user_phone"`
	UserAddress           *string   `json:"user_address"`
	ProductID             *int      `json:"product_id"`           // fabrics
	ReadymadeProductID    *int      `json:"readymade_product_id"` // readymade_products
	ProductName           *string   `json:"product_name"`
	Quantity              *string   `json:"quantity"`
	Quality               *string   `json:"quality"`
	Amount                *float64  `json:"amount"`
	CreatedAt             time.Time `json:"created_at"`
	CancellationRequested bool      `json:"cancellation_requested"`
}

// AmountOrZero returns the order amount, treating a missing amount as zero.
func (o Order) AmountOrZero() float64 {
	if o.Amount == nil {
		return 0
	}
	return *o.Amount
}

// Email returns the stored customer email or "".
func (o Order) Email() string {
	if o.UserEmail == nil {
		return ""
	}
	return *o.UserEmail
}

// OrderInput is the checkout payload. Nothing but the ready-made product
// reference is checked against other tables.
type OrderInput struct {
	UserID             *int     `json:"user_id"`
	UserName           *string  `json:"user_name"`
	UserEmail          *string  `json:"user_email"`
	UserPhone          *string  `json:"user_phone"`
	UserAddress        *string  `json:"user_address"`
	ReadymadeProductID *int     `json:"readymade_product_id"`
	ProductID          *int     `json:"product_id"`
	ProductName        *string  `json:"product_name"`
	Quantity           *string  `json:"quantity"`
	Quality            *string  `json:"quality"`
	Amount             *float64 `json:"amount"`
}

// CancellationRequest carries the email the customer claims for an order.
type CancellationRequest struct {
	Email string `json:"email"`
}

// CancellationResult is returned after a cancellation request is recorded.
type CancellationResult struct {
	ID                    int    `json:"id"`
	Message               string `json:"message"`
	CancellationRequested bool   `json:"cancellation_requested"`
}

// OrderCreated is an order plus a confirmation message.
type OrderCreated struct {
	Order
	Message string `json:"message"`
}

// DeletedOrder summarizes an order removed by an administrator.
type DeletedOrder struct {
	ID          int     `json:"id"`
	UserName    *string `json:"user_name"`
	UserEmail   *string `json:"user_email"`
	UserPhone   *string `json:"user_phone"`
	ProductName *string `json:"product_name"`
	Message     string  `json:"message"`
}

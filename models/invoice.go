package models

import "time"

// Invoice is a billing document generated from an order. Customer and product
// fields are frozen at generation time.
type Invoice struct {
	ID              int        `json:"id"`
	InvoiceNumber   string     `json:"invoice_number"`
	OrderID         int        `json:"order_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   *string    `json:"customer_email"`
	CustomerAddress *string    `json:"customer_address"`
	CustomerPhone   *string    `json:"customer_phone"`
	ProductName     *string    `json:"product_name"`
	Quantity        *string    `json:"quantity"`
	Quality         *string    `json:"quality"`
	Subtotal        float64    `json:"subtotal"`
	TaxRate         float64    `json:"tax_rate"`
	TaxAmount       float64    `json:"tax_amount"`
	TotalAmount     float64    `json:"total_amount"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentMethod   *string    `json:"payment_method"`
	IssueDate       time.Time  `json:"issue_date"`
	DueDate         *time.Time `json:"due_date"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
}

// InvoiceInput is used for generating an invoice from an order.
type InvoiceInput struct {
	OrderID       int       `json:"order_id"`
	TaxRate       *float64  `json:"tax_rate"`
	PaymentMethod *string   `json:"payment_method"`
	PaymentStatus *string   `json:"payment_status"`
	DueDate       *FlexTime `json:"due_date"`
	Notes         *string   `json:"notes"`
}

func (i *InvoiceInput) Validate() string {
	if i.OrderID <= 0 {
		return "order_id is required"
	}
	return ""
}

// Rate returns the tax rate, defaulting to zero.
func (i InvoiceInput) Rate() float64 {
	if i.TaxRate == nil {
		return 0
	}
	return *i.TaxRate
}

// Status returns the requested payment status, defaulting to "Pending".
func (i InvoiceInput) Status() string {
	if i.PaymentStatus == nil || *i.PaymentStatus == "" {
		return "Pending"
	}
	return *i.PaymentStatus
}

// InvoiceStatusInput updates an invoice's payment status. Any value is accepted.
type InvoiceStatusInput struct {
	Status string `json:"status" validate:"required"`
}

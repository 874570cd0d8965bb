package models

import "time"

// Sale is a sales-ledger entry recorded alongside exactly one order.
type Sale struct {
	ID            int       `json:"id"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Day           *string   `json:"day"` // weekday name at creation
	TransactionID string    `json:"transaction_id"`
	OrderID       *int      `json:"order_id"`
}

// DaySales is revenue grouped by weekday label.
type DaySales struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

// Analytics is the sales dashboard summary.
type Analytics struct {
	TotalRevenue float64    `json:"total_revenue"`
	TotalOrders  int        `json:"total_orders"`
	SalesByDay   []DaySales `json:"sales_by_day"`
	Message      string     `json:"message"`
}

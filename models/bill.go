package models

import "time"

// VendorPayment is a payable recorded against a vendor.
type VendorPayment struct {
	ID              int            `json:"id"`
	VendorID        int            `json:"vendor_id"`
	PaymentNumber   string         `json:"payment_number"`
	Description     *string        `json:"description"`
	Amount          float64        `json:"amount"`
	PaymentMethod   *string        `json:"payment_method"`
	PaymentDate     time.Time      `json:"payment_date"`
	DueDate         *time.Time     `json:"due_date"`
	Status          string         `json:"status"` // Pending, Paid, Overdue, Cancelled by convention
	ReferenceNumber *string        `json:"reference_number"`
	BillReference   *string        `json:"bill_reference"`
	Notes           *string        `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	Vendor          *VendorSummary `json:"vendor,omitempty"`
}

// VendorSummary is the short vendor form embedded in payment listings.
type VendorSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	CompanyName *string `json:"company_name"`
}

// VendorPaymentInput is used for creating payments and for partial updates.
type VendorPaymentInput struct {
	VendorID        *int      `json:"vendor_id"`
	Description     *string   `json:"description"`
	Amount          *float64  `json:"amount"`
	PaymentMethod   *string   `json:"payment_method"`
	PaymentDate     *FlexTime `json:"payment_date"`
	DueDate         *FlexTime `json:"due_date"`
	Status          *string   `json:"status"`
	ReferenceNumber *string   `json:"reference_number"`
	BillReference   *string   `json:"bill_reference"`
	Notes           *string   `json:"notes"`
}

// Validate checks a create payload and fills the status default.
func (p *VendorPaymentInput) Validate() string {
	if p.VendorID == nil {
		return "vendor_id is required"
	}
	if p.Amount == nil {
		return "amount is required"
	}
	if p.Status == nil || *p.Status == "" {
		status := "Pending"
		p.Status = &status
	}
	return ""
}

// Fields returns the supplied columns and values in a stable order.
func (p *VendorPaymentInput) Fields() ([]string, []any) {
	var cols []string
	var vals []any
	if p.VendorID != nil {
		cols, vals = append(cols, "vendor_id"), append(vals, *p.VendorID)
	}
	if p.Description != nil {
		cols, vals = append(cols, "description"), append(vals, *p.Description)
	}
	if p.Amount != nil {
		cols, vals = append(cols, "amount"), append(vals, *p.Amount)
	}
	if p.PaymentMethod != nil {
		cols, vals = append(cols, "payment_method"), append(vals, *p.PaymentMethod)
	}
	if p.PaymentDate != nil {
		cols, vals = append(cols, "payment_date"), append(vals, *p.PaymentDate.Ptr())
	}
	if p.DueDate != nil {
		cols, vals = append(cols, "due_date"), append(vals, *p.DueDate.Ptr())
	}
	if p.Status != nil {
		cols, vals = append(cols, "status"), append(vals, *p.Status)
	}
	if p.ReferenceNumber != nil {
		cols, vals = append(cols, "reference_number"), append(vals, *p.ReferenceNumber)
	}
	if p.BillReference != nil {
		cols, vals = append(cols, "bill_reference"), append(vals, *p.BillReference)
	}
	if p.Notes != nil {
		cols, vals = append(cols, "notes"), append(vals, *p.Notes)
	}
	return cols, vals
}

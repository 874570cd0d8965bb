package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Enquiry is a contact-form submission.
type Enquiry struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Company   *string   `json:"company"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// EnquiryInput is the public contact form.
type EnquiryInput struct {
	Name    string      `json:"name" validate:"required,min=3,max=100"`
	Phone   LooseString `json:"phone" validate:"required"`
	Company *string     `json:"company"`
	Email   string      `json:"email" validate:"required,email"`
	Message string      `json:"message" validate:"required,min=10,max=1000"`
}

// LooseString accepts either a JSON string or a JSON number.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = LooseString(n.String())
	return nil
}

// EmailInput is an ad-hoc message sent from the admin dashboard.
type EmailInput struct {
	ToEmail string `json:"to_email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// UsageStats is the admin billing summary.
type UsageStats struct {
	TotalOrdersProcessed  int     `json:"total_orders_processed"`
	TotalRevenueProcessed float64 `json:"total_revenue_processed"`
}

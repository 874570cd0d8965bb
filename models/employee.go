package models

import "time"

// Employee is a staff record managed from the admin dashboard.
type Employee struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Position   *string   `json:"position"`
	Salary     *int      `json:"salary"`
	JoinedDate time.Time `json:"joined_date"`
}

// EmployeeInput is used for creating/updating employees.
type EmployeeInput struct {
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Position *string `json:"position"`
	Salary   *int    `json:"salary"`
}

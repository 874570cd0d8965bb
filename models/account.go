package models

import (
	"time"
	"unicode"
)

// User is a registered customer account. The password hash never leaves the store.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInput is used for customer registration.
type UserInput struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Phone    string `json:"phone" validate:"required,min=10,max=12"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (u *UserInput) Validate() string {
	return passwordRule(u.Password)
}

// Admin is a staff account for the dashboard.
type Admin struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminInput is used for admin registration.
type AdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (a *AdminInput) Validate() string {
	return passwordRule(a.Password)
}

// LoginInput is shared by customer and admin login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Token is returned after a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func passwordRule(p string) string {
	var digit, upper bool
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	if !digit {
		return "password must contain at least one digit"
	}
	if !upper {
		return "password must contain at least one uppercase letter"
	}
	return ""
}

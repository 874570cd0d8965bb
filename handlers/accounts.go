package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bimmills/portal/auth"
	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
)

func (h *Handler) emailTaken(ctx context.Context, table, email string) (bool, error) {
	var n int
	err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE email = $1", email).Scan(&n)
	return n > 0, err
}

// login checks credentials against table and issues a token with role.
func (h *Handler) login(ctx context.Context, table, role string, input models.LoginInput) (models.Token, error) {
	var hash string
	err := h.db.QueryRowContext(ctx, "SELECT password FROM "+table+" WHERE email = $1", input.Email).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !auth.CheckPassword(hash, input.Password)) {
		return models.Token{}, service.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return models.Token{}, err
	}

	raw, err := h.tokens.Issue(input.Email, role)
	if err != nil {
		return models.Token{}, fmt.Errorf("issuing token: %w", err)
	}
	return models.Token{AccessToken: raw, TokenType: "bearer"}, nil
}

// RegisterUser creates a customer account
// @Summary      Register customer
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      models.UserInput  true  "Account details"
// @Success      201   {object}  Response{data=Message}
// @Failure      400   {object}  Response{error=string}
// @Router       /users/register [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input models.UserInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	taken, err := h.emailTaken(r.Context(), "users", input.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if taken {
		writeServiceError(w, r, service.Invalid("Email already registered"))
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_, err = h.db.ExecContext(r.Context(),
		"INSERT INTO users (name, phone, email, password, created_at) VALUES ($1, $2, $3, $4, $5)",
		input.Name, input.Phone, input.Email, hash, time.Now().UTC())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Message{Message: "User registered successfully"})
}

// LoginUser exchanges customer credentials for a token
// @Summary      Customer login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials  body      models.LoginInput  true  "Credentials"
// @Success      200          {object}  Response{data=models.Token}
// @Failure      401          {object}  Response{error=string}
// @Router       /users/login [post]
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}
	tok, err := h.login(r.Context(), "users", auth.RoleUser, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

// RegisterAdmin creates a staff account
// @Summary      Register admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        admin  body      models.AdminInput  true  "Account details"
// @Success      201    {object}  Response{data=Message}
// @Failure      400    {object}  Response{error=string}
// @Router       /auth/register [post]
func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var input models.AdminInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	taken, err := h.emailTaken(r.Context(), "admins", input.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if taken {
		writeServiceError(w, r, service.Invalid("Admin already exists"))
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	_, err = h.db.ExecContext(r.Context(),
		"INSERT INTO admins (email, password, created_at) VALUES ($1, $2, $3)",
		input.Email, hash, time.Now().UTC())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Message{Message: "Admin registered successfully"})
}

// LoginAdmin exchanges staff credentials for a token
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      models.LoginInput  true  "Credentials"
// @Success      200          {object}  Response{data=models.Token}
// @Failure      401          {object}  Response{error=string}
// @Router       /auth/login [post]
func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}
	tok, err := h.login(r.Context(), "admins", auth.RoleAdmin, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/bimmills/portal/auth"
	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// Message is the payload of endpoints that only confirm an action.
type Message struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

// writeServiceError maps classified errors to a status. Anything unclassified
// is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type selfValidator interface {
	Validate() string
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into v, then runs struct tag validation and the
// input's own Validate method when it has one.
func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return bodyError(err)
	}
	if err := h.validate.Struct(v); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			return service.Invalid(fieldMessage(fields[0]))
		}
		return service.Invalid(err.Error())
	}
	if sv, ok := v.(selfValidator); ok {
		if msg := sv.Validate(); msg != "" {
			return service.Invalid(msg)
		}
	}
	return nil
}

// decodePartial reads a JSON body for a partial update. Create-time rules do
// not apply.
func (h *Handler) decodePartial(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return bodyError(err)
	}
	return nil
}

// bodyError names the offending field or value when the body is well formed
// JSON of the wrong shape.
func bodyError(err error) error {
	var (
		dateErr *models.DateError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &dateErr):
		return service.Invalid(dateErr.Error())
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return service.Invalid(typeErr.Field + " has an invalid type")
	default:
		return service.Invalid("invalid JSON")
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// pathID parses the named URL parameter as a positive integer.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, service.Invalid("invalid " + name)
	}
	return id, nil
}

// paging reads skip/limit query parameters with the given default limit.
func paging(r *http.Request, defaultLimit int) (skip, limit int) {
	q := r.URL.Query()
	skip, _ = strconv.Atoi(q.Get("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}

// RequireAdmin is middleware that demands a bearer token with the admin role.
// When enforcement is off it passes every request through.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	if !h.enforceAdmin {
		slog.Warn("auth.enforce_admin is false, admin API is unauthenticated")
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := h.tokens.Parse(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if claims.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package service

import "errors"

// Error kinds. The HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a classified error whose message is safe to show to clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

// NotFound reports that the named resource does not exist.
func NotFound(what string) error {
	return &Error{Kind: ErrNotFound, Msg: what + " not found"}
}

// Forbidden reports that the caller may not act on an existing resource.
func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

// Unauthorized reports failed credentials.
func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Msg: msg}
}

// ValidationError is a malformed or rejected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid returns a *ValidationError with msg.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

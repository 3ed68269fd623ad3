// Package apperr carries the error taxonomy every service speaks. Handlers map
// a Kind to an HTTP status; storage errors never leak past the service layer.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// Validation: missing or malformed required field.
	Validation Kind = iota
	// Unauthorized: no or invalid identity.
	Unauthorized
	// Forbidden: valid identity, insufficient permission or ownership mismatch.
	Forbidden
	// NotFound: referenced entity absent.
	NotFound
	// Conflict: uniqueness or state-machine violation (duplicate bid, double accept).
	Conflict
	// Retryable: upstream is temporarily unavailable; the caller may try again.
	Retryable
	// Internal: anything else; details stay in the logs.
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause while keeping the caller-visible message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// StatusCode maps a Kind to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Retryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-visible message; internal errors are masked.
func Message(err error) string {
	if KindOf(err) == Internal {
		return "Internal Server Error"
	}
	return err.Error()
}

// Package apperr defines the error taxonomy shared by usecases and transport.
// Every failure a handler can return is one of these kinds; transport maps a
// kind to an HTTP status exactly once.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	// Validation: client-fixable input problems (400).
	Validation Kind = iota
	// Unauthorized: missing or bad credentials (401).
	Unauthorized
	// Forbidden: token-state failures (403).
	Forbidden
	// NotFound: the addressed resource does not exist for this user (404).
	NotFound
	// Conflict: duplicate unique key (409).
	Conflict
	// Internal: store/connectivity failure (500). Detail is suppressed in
	// production responses and only ever logged.
	Internal
)

// Symbolic codes for token-state failures. Credential mismatches deliberately
// carry no code so responses stay indistinguishable.
const (
	CodeNoToken      = "NO_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeAuthDBError  = "AUTH_DB_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewCoded(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches an underlying cause, kept for logs only.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// From normalizes any error to *Error; unknown errors become Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: Internal, Message: "Internal server error", Err: err}
}

// HTTPStatus maps an error kind to its transport status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
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
	default:
		return http.StatusInternalServerError
	}
}

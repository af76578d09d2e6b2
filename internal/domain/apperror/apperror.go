// Package apperror defines the error taxonomy shared by all use-cases.
// Handlers translate a Kind into an HTTP status; everything that is not an
// *Error is treated as an internal failure and never shown to the client.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for boundary translation.
type Kind int

const (
	// KindInternal is the default for unexpected failures.
	KindInternal Kind = iota
	// KindValidation marks malformed or missing input (caller's fault).
	KindValidation
	// KindUnauthorized marks missing or invalid credentials.
	KindUnauthorized
	// KindForbidden marks a role or ownership mismatch.
	KindForbidden
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindConflict marks a business-invariant violation (duplicate booking,
	// class full, trainer schedule overlap, duplicate email).
	KindConflict
	// KindTransport marks a downstream delivery failure (mail provider).
	KindTransport
)

// HTTPStatus maps a Kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, user-readable error.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a user-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an existing error, keeping it as the cause. The message of
// err is reused so domain sentinel errors stay user-readable.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// KindOf returns the Kind of err, or KindInternal if err is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

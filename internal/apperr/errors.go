// Package apperr defines the error taxonomy shared by repositories,
// services and the HTTP layer.
//
// Each error carries a Kind that maps onto exactly one HTTP status:
//
//	KindValidation     -> 400
//	KindAuthentication -> 401
//	KindNotFound       -> 404
//	KindConflict       -> 409
//	KindInternal       -> 500
//
// Errors that are not *Error values are treated as KindInternal.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
)

// Sentinels returned by the datastore adapters.
var (
	ErrNotFound = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict = &Error{Kind: KindConflict, Message: "already exists"}
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "books.create"
	Message string // safe to show to clients
	Err     error  // underlying cause, never shown to clients
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Internal wraps an unexpected failure. An err that is already internal
// is returned as is, keeping the innermost op.
func Internal(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindInternal {
		return e
	}
	return &Error{Kind: KindInternal, Op: op, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status returns the HTTP status for err.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing message for err. Internal
// errors always get a generic message.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return "Internal Server Error."
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(Status(err))
}

package services

import (
	"errors"
	"net/http"

	"github.com/mrlokans/bookshelf/internal/apperr"
	"github.com/mrlokans/bookshelf/internal/validation"
)

// Result is the outcome of a service operation. Handlers write Status as
// the HTTP code and {message, data} as the body.
type Result struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func NewResult(status int, message string, data any) *Result {
	return &Result{Status: status, Message: message, Data: data}
}

func invalid(verr *validation.Error) *Result {
	return NewResult(http.StatusBadRequest, verr.Error(), nil)
}

// expected converts datastore errors that map to a client outcome into a
// Result. Anything else is returned for the error middleware.
func expected(err error, notFound string) (*Result, error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindNotFound:
			return NewResult(http.StatusNotFound, notFound, nil), nil
		case apperr.KindConflict, apperr.KindValidation:
			return NewResult(apperr.Status(err), apperr.PublicMessage(err), nil), nil
		}
	}
	return nil, err
}

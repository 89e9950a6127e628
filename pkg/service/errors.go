package service

import (
	"database/sql"
	"fmt"

	"exchange_back/models"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error is a failure the caller is allowed to see. Anything else returned by
// the service is treated as internal.
type Error struct {
	Kind    Kind
	Message string
	Details []models.FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func invalidField(field, message string) *Error {
	return &Error{
		Kind:    KindInvalid,
		Message: "Validation failed",
		Details: []models.FieldError{{Field: field, Message: message}},
	}
}

func notFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

var errNoRows = sql.ErrNoRows

// notFoundOr maps a missing row to a not-found error and passes anything else through.
func notFoundOr(err error, what string) error {
	if errors.Is(err, errNoRows) {
		return notFound(what)
	}
	return err
}

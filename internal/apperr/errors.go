// Package apperr holds the error taxonomy shared by the reservation handlers.
package apperr

import (
	"errors"
	"net/http"

	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

type Kind int

const (
	KindMissingField Kind = iota + 1
	KindReferenceNotFound
	KindOutOfRange
	KindInvalidValue
	KindUnauthenticated
)

// Message codes returned to clients.
const (
	CodeInvalidKeys        = "INVALID_KEYS"
	CodeInvalidValue       = "INVALID_VALUE"
	CodeInvalidPhoneNumber = "INVALID_PHONE_NUMBER"
	CodeChooseOption       = "CHOOSE_BETWEEN_THREE_OPTIONS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidUser        = "INVALID_USER"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is a client-facing failure. Code is the machine-readable message.
type Error struct {
	Kind  Kind
	Code  string
	Field string
}

func (e *Error) Error() string { return e.Code }

func MissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Code: CodeInvalidKeys, Field: field}
}

// ReferenceNotFound reports a foreign-key id that does not resolve.
// The code is "<field> INVALID_VALUES".
func ReferenceNotFound(field string) *Error {
	return &Error{Kind: KindReferenceNotFound, Code: field + " INVALID_VALUES", Field: field}
}

func OutOfRange(field, code string) *Error {
	return &Error{Kind: KindOutOfRange, Code: code, Field: field}
}

func InvalidValue(field string) *Error {
	return &Error{Kind: KindInvalidValue, Code: CodeInvalidValue, Field: field}
}

// InvalidFieldValue reports a present but unusable field, e.g. a malformed date.
func InvalidFieldValue(field string) *Error {
	return &Error{Kind: KindInvalidValue, Code: field + " INVALID_VALUES", Field: field}
}

func Unauthenticated(code string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: code}
}

// Status maps err to an HTTP status and message code. Errors outside the
// taxonomy map to 500.
func Status(err error) (int, string) {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, CodeInternal
	}
	switch ae.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized, ae.Code
	case KindMissingField, KindReferenceNotFound, KindOutOfRange, KindInvalidValue:
		return http.StatusBadRequest, ae.Code
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// Write sends err as the {"message": code} envelope with its mapped status.
func Write(w http.ResponseWriter, err error) {
	status, code := Status(err)
	utilities.WriteMessage(w, status, code)
}

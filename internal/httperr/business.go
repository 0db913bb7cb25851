package httperr

import (
	"errors"
	"net/http"
)

// Kind is the machine-checkable class of a business error.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindSlotUnavailable    Kind = "slot_unavailable"
	KindForbidden          Kind = "forbidden"
	KindInvalidStatus      Kind = "invalid_status"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidCredentials Kind = "invalid_credentials"
)

// BusinessError is an expected outcome of a use case. Code narrows the Kind
// (e.g. "appointment_not_found") and Message is safe to show to users.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func newBusiness(kind Kind, code, message string) error {
	if code == "" {
		code = string(kind)
	}
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return newBusiness(KindNotFound, code, message)
}

func ErrSlotUnavailable(message string) error {
	return newBusiness(KindSlotUnavailable, "", message)
}

func ErrForbidden(message string) error {
	return newBusiness(KindForbidden, "", message)
}

func ErrInvalidStatus(code, message string) error {
	return newBusiness(KindInvalidStatus, code, message)
}

func ErrDuplicateEmail(message string) error {
	return newBusiness(KindDuplicateEmail, "", message)
}

func ErrInvalidInput(code, message string) error {
	return newBusiness(KindInvalidInput, code, message)
}

func ErrInvalidCredentials(message string) error {
	return newBusiness(KindInvalidCredentials, "", message)
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}

// StatusOf maps a Kind to its HTTP status.
func StatusOf(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotUnavailable, KindDuplicateEmail:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidStatus, KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

package httperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidSignature
	KindInvalidOperation
	KindUpstream
	KindTooManyRequests
)

// Error is the single error type crossing layer boundaries. Code is the
// stable machine-readable identifier rendered as error_code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code, message string, err error) error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(code, message string) error {
	return newError(KindValidation, code, message, nil)
}

func Unauthorized(code, message string) error {
	return newError(KindUnauthorized, code, message, nil)
}

func Forbidden(code, message string) error {
	return newError(KindForbidden, code, message, nil)
}

func NotFound(code, message string) error {
	return newError(KindNotFound, code, message, nil)
}

func Conflict(code, message string) error {
	return newError(KindConflict, code, message, nil)
}

func InvalidSignature(message string) error {
	return newError(KindInvalidSignature, "invalid_signature", message, nil)
}

func InvalidOperation(code, message string) error {
	return newError(KindInvalidOperation, code, message, nil)
}

func TooManyRequests(code, message string) error {
	return newError(KindTooManyRequests, code, message, nil)
}

// Upstream wraps a provider failure. The wrapped error is logged, never rendered.
func Upstream(code, message string, err error) error {
	return newError(KindUpstream, code, message, err)
}

func Internal(code string, err error) error {
	return newError(KindInternal, code, "Internal server error.", err)
}

// AlreadyPaid is the conflict returned for any attempt to pay a settled booking.
func AlreadyPaid() error {
	return Conflict("already_paid", "This booking has already been paid.")
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	if e, ok := As(err); ok {
		return e.Code == code
	}
	return false
}

func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidSignature, KindInvalidOperation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

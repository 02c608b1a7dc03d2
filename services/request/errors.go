package request

import (
	"errors"
	"fmt"
)

// Error codes for business-rule violations. These surface to the handler
// layer, which maps them to HTTP statuses; none are retried by callers.
const (
	CodeValidation         = "validationError"
	CodeNotFound           = "notFound"
	CodeForbidden          = "forbidden"
	CodeInvalidState       = "invalidState"
	CodeInvalidTransition  = "invalidTransition"
	CodeStaleNegotiation   = "staleNegotiation"
	CodeAlreadyConfirmed   = "alreadyConfirmed"
	CodePaymentNotSelected = "paymentNotSelected"
	CodeInvalidDayIndex    = "invalidDayIndex"
	CodeNotEligible        = "notEligible"
	CodeConflict           = "conflict"
)

// RequestError is a typed business-rule failure.
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewRequestError builds a RequestError with a formatted message.
func NewRequestError(code, format string, args ...interface{}) error {
	return &RequestError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the RequestError code carried by err, or "".
func ErrorCode(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsCode reports whether err carries the given RequestError code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

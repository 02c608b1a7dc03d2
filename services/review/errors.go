package review

import (
	"errors"
	"fmt"
)

// Error codes for review submission failures.
const (
	CodeValidation      = "validationError"
	CodeNotFound        = "notFound"
	CodeForbidden       = "forbidden"
	CodeNotEligible     = "notEligible"
	CodeAlreadyReviewed = "alreadyReviewed"
)

// ReviewError is a typed business-rule failure.
type ReviewError struct {
	Code    string
	Message string
}

func (e *ReviewError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewReviewError builds a ReviewError with a formatted message.
func NewReviewError(code, format string, args ...interface{}) error {
	return &ReviewError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the ReviewError code carried by err, or "".
func ErrorCode(err error) string {
	var re *ReviewError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsCode reports whether err carries the given ReviewError code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

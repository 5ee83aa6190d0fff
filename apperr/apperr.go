// Package apperr defines the sentinel errors shared by all controllers so
// handlers can map failures to HTTP status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrAuthenticationRequired means no signed-in user is present for an
	// operation that needs one. No writes are performed.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrOrderNotFound means a write targeted a non-existent or
	// unresolvable order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition means a status advance was requested on a
	// terminal or out-of-sequence order.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation covers bad input caught before any write attempt.
	ErrValidation = errors.New("validation failed")
)

// Validationf wraps ErrValidation with detail for the inline message shown to
// the user.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// HTTPStatus maps an error to the response code handlers should send.
// Anything outside the taxonomy is a remote/store failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

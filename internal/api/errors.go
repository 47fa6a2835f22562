package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single failure shape for all backend calls. StatusCode 0 means
// no response was received at all.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
}

// IsNetwork reports whether the error means no response was received.
func (e *Error) IsNetwork() bool {
	return e.StatusCode == 0
}

// IsStatus reports whether err is a backend error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// ValidationError is a client-local precondition failure. It never reaches the
// network and never leaves partial side effects.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewValidationError creates a client-local validation failure.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a client-local validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// statusMessage is the generic fallback when the backend body carries no detail.
func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", code)
}

// utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// Error codes returned by the workflow services
const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUnavailable  = "unavailable"
	CodeInternal     = "internal"
)

// AppError is a typed error carrying a taxonomy code and a message safe
// to show to the end user.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidInput reports a missing or malformed request field.
func NewInvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

// NewNotFound reports that a referenced record does not exist.
func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewConflict reports a state-machine precondition violation.
func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewUnavailable reports that the underlying store is unreachable.
func NewUnavailable(message string, err error) *AppError {
	return &AppError{Code: CodeUnavailable, Message: message, Err: err}
}

// NewInternal wraps an unexpected failure without leaking store details
// to the caller.
func NewInternal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// AsAppError extracts an AppError from an error chain, defaulting to an
// internal error so handlers always have a code to map.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}

// HTTPStatus maps an error code to its HTTP status.
func HTTPStatus(err error) int {
	switch AsAppError(err).Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Package apperror carries the error taxonomy shared by the API and the worker.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes used in API responses and worker logs.
const (
	CodeValidation    = "ERR_VALIDATION"
	CodeNotFound      = "ERR_NOT_FOUND"
	CodeConfiguration = "ERR_CONFIGURATION"
	CodeTransient     = "ERR_TRANSIENT"
)

// AppError is an application-level error with an HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Validation rejects input at the boundary. Nothing is persisted for the unit.
func Validation(format string, a ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, a...), Status: http.StatusBadRequest}
}

// NotFound reports an unknown asset, event or score.
func NotFound(format string, a ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, a...), Status: http.StatusNotFound}
}

// Configuration reports an unreadable or invalid weight configuration.
func Configuration(format string, a ...interface{}) *AppError {
	return &AppError{Code: CodeConfiguration, Message: fmt.Sprintf(format, a...), Status: http.StatusInternalServerError}
}

// Transient reports an unavailable store or queue.
func Transient(format string, a ...interface{}) *AppError {
	return &AppError{Code: CodeTransient, Message: fmt.Sprintf(format, a...), Status: http.StatusServiceUnavailable}
}

// As returns the first AppError in the chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the code of the first AppError in the chain, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// StatusOf maps err to an HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// IsRetryable reports whether an asynchronous task failing with err should be redelivered.
// Validation and not-found failures will fail the same way on every attempt.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case CodeValidation, CodeNotFound:
		return false
	default:
		return true
	}
}

// Package errors carries coded application errors across layers. Adapters
// attach a code, services wrap with context, and the HTTP layer maps the
// code to a status.
package errors

import (
	"errors"
	"fmt"
)

// Codes understood by ui.statusForError
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// codeUnknown is reported for errors that never passed through this package
const codeUnknown = "UNKNOWN"

// AppError is an error with a machine-readable code
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error { return e.Cause }

// New creates an AppError without a cause
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap adds context to err. The code of the nearest AppError in the chain is
// kept; plain errors become CodeInternalError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	var appErr *AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a format string
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode replaces the code of err, keeping its message and cause
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: code, Message: appErr.Message, Cause: appErr.Cause}
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// GetCode returns the code of the outermost AppError in the chain
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return codeUnknown
}

func ConfigInvalid(message string) *AppError   { return New(CodeConfigInvalid, message) }
func ValidationError(message string) *AppError { return New(CodeValidationError, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func InvalidInput(message string) *AppError    { return New(CodeInvalidInput, message) }

// NotFound reports a missing resource by name
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

// Package apperror defines the error taxonomy surfaced at the request
// boundary. Handlers wrap failures in an AppError so the router layer can
// map them to HTTP statuses without inspecting storage internals.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrAuthRequired   = errors.New("authentication required")
	ErrForbidden      = errors.New("forbidden")
	ErrUploadRejected = errors.New("upload rejected")
)

// AppError pairs a taxonomy sentinel with a human-readable message safe to
// return to the caller.
type AppError struct {
	Err     error  // taxonomy sentinel
	Message string // safe for the response body
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for an unknown resource id.
func NotFound(resource string, id int) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed returns an AppError for a malformed filter or body field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// AuthRequired returns an AppError for a request with no valid session or token.
func AuthRequired() *AppError {
	return &AppError{
		Err:     ErrAuthRequired,
		Message: "Unauthorized",
	}
}

// Forbidden returns an AppError for an authenticated caller lacking admin
// permission. Distinct from AuthRequired.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// UploadRejected returns an AppError for a file failing type or size checks.
func UploadRejected(message string) *AppError {
	return &AppError{
		Err:     ErrUploadRejected,
		Message: message,
	}
}

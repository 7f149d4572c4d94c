package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for callers and for HTTP status mapping.
type Type string

const (
	TypeValidation      Type = "VALIDATION"
	TypeNotFound        Type = "NOT_FOUND"
	TypeConflict        Type = "CONFLICT"
	TypeForbidden       Type = "FORBIDDEN"
	TypeUnauthenticated Type = "UNAUTHENTICATED"
	TypeInternal        Type = "INTERNAL"
)

// AppError is the error shape every repository and handler failure flows
// through. Field carries the offending input field for validation errors.
type AppError struct {
	Type    Type
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to the status code handlers respond with.
func (e *AppError) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeForbidden:
		return http.StatusForbidden
	case TypeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message}
}

func ValidationField(field, message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message, Field: field}
}

func NotFound(resource string) *AppError {
	return &AppError{Type: TypeNotFound, Message: resource + " not found"}
}

func Conflict(message string) *AppError {
	return &AppError{Type: TypeConflict, Message: message}
}

func Forbidden() *AppError {
	return &AppError{Type: TypeForbidden, Message: "forbidden"}
}

func Unauthenticated() *AppError {
	return &AppError{Type: TypeUnauthenticated, Message: "authentication required"}
}

func Internal(message string, cause error) *AppError {
	return &AppError{Type: TypeInternal, Message: message, Cause: cause}
}

// Is reports whether err is an AppError of the given type.
func Is(err error, t Type) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// From extracts the AppError from err, wrapping unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}

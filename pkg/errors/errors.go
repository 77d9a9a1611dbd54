package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies a reconciliation failure
type ErrorType string

const (
	// Authentication and account errors
	ErrorTypeAuthentication   ErrorType = "AUTHENTICATION"
	ErrorTypeWeakPassword     ErrorType = "WEAK_PASSWORD"
	ErrorTypeInvalidCode      ErrorType = "INVALID_CODE"
	ErrorTypeNotAuthenticated ErrorType = "NOT_AUTHENTICATED"

	// Secondary-call errors: the primary action succeeded but a follow-up failed
	ErrorTypeAttributeFetch  ErrorType = "ATTRIBUTE_FETCH"
	ErrorTypeAttributeUpdate ErrorType = "ATTRIBUTE_UPDATE"
	ErrorTypeProfilePersist  ErrorType = "PROFILE_PERSIST"

	// General errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeForbidden  ErrorType = "FORBIDDEN"
	ErrorTypeInternal   ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error. Transport failures and collaborator
// rejections are not distinguished; the original message travels along for
// diagnostics.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// TypeOf returns the error type of err, or ErrorTypeInternal for unknown errors
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// StatusOf returns the HTTP status for err
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// NewAuthenticationError creates an invalid-credentials error
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewWeakPasswordError creates a password-policy violation error
func NewWeakPasswordError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeWeakPassword,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidCodeError creates a verification-code rejection error
func NewInvalidCodeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidCode,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotAuthenticatedError signals an operation that requires a session
func NewNotAuthenticatedError() *AppError {
	return &AppError{
		Type:       ErrorTypeNotAuthenticated,
		Message:    "no authenticated session",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewAttributeFetchError signals a failed attribute read after a token was issued
func NewAttributeFetchError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAttributeFetch,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewAttributeUpdateError signals a failed identity-side attribute write
func NewAttributeUpdateError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAttributeUpdate,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewProfilePersistError signals a failed profile-store write. A preceding
// identity-side update is not rolled back; the stores may transiently diverge.
func NewProfilePersistError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeProfilePersist,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Package apperrors defines the error taxonomy surfaced at the HTTP
// boundary. Services return these; handlers map them to status codes.
package apperrors

import "fmt"

// ValidationError indicates malformed or missing required fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation creates a ValidationError with a formatted message.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced resource is absent.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound creates a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// AuthorizationError indicates the actor is not the required owner.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// Authorization creates an AuthorizationError with a formatted message.
func Authorization(format string, args ...any) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// UnauthenticatedError indicates a missing or invalid credential.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

// Unauthenticated creates an UnauthenticatedError with a formatted message.
func Unauthenticated(format string, args ...any) error {
	return &UnauthenticatedError{Message: fmt.Sprintf(format, args...)}
}

// PayloadTooLargeError indicates an uploaded file exceeds the size ceiling.
type PayloadTooLargeError struct {
	Message string
}

func (e *PayloadTooLargeError) Error() string { return e.Message }

// PayloadTooLarge creates a PayloadTooLargeError with a formatted message.
func PayloadTooLarge(format string, args ...any) error {
	return &PayloadTooLargeError{Message: fmt.Sprintf(format, args...)}
}

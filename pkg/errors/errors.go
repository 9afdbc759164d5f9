package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeMissingCredential indicates the model API key was not provided
	ErrorTypeMissingCredential ErrorType = "MISSING_CREDENTIAL"

	// ErrorTypeGeocodingMiss indicates a location could not be resolved
	ErrorTypeGeocodingMiss ErrorType = "GEOCODING_MISS"

	// ErrorTypeResponseFormat indicates the model reply was not the expected JSON
	ErrorTypeResponseFormat ErrorType = "RESPONSE_FORMAT"

	// ErrorTypeUnauthorized indicates the model provider rejected the credential
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewMissingCredentialError creates the error returned before any network
// call when no model API key was supplied.
func NewMissingCredentialError() *AppError {
	return &AppError{
		Type:    ErrorTypeMissingCredential,
		Message: "model api key is required",
	}
}

// NewGeocodingMissError creates a geocoding miss error
func NewGeocodingMissError(location string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeGeocodingMiss,
		Message: fmt.Sprintf("could not resolve %q", location),
		Err:     err,
	}
}

// NewResponseFormatError wraps the decode error of a model reply
func NewResponseFormatError(err error) *AppError {
	return &AppError{
		Type:    ErrorTypeResponseFormat,
		Message: "model response is not valid clinic JSON",
		Err:     err,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or ""
// when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err's chain holds an AppError of type t.
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

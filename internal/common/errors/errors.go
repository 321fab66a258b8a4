// Package errors provides standardized error handling for the back-office API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeAuthenticationError ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeSessionInvalid      ErrorCode = "SESSION_INVALID"

	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedExtraction ErrorCode = "MALFORMED_EXTRACTION"

	ErrCodeCustomerResolutionFailed ErrorCode = "CUSTOMER_RESOLUTION_FAILED"
	ErrCodePersistenceError         ErrorCode = "PERSISTENCE_ERROR"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidInputError creates a non-retryable client input error. The
// message is surfaced verbatim as the response error text.
func NewInvalidInputError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable not-found error.
func NewNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable authentication error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationError,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionInvalidError creates a non-retryable session error.
func NewSessionInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionInvalid,
		Message:   "Session is missing or expired",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError creates a retryable completion-backend error.
// statusCode is the backend's HTTP status when one was received, else 0.
func NewUpstreamUnavailableError(statusCode int, err error) *StandardError {
	details := err.Error()
	if statusCode > 0 {
		details = fmt.Sprintf("status %d: %s", statusCode, details)
	}
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   "Fout van OpenAI API",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedExtractionError creates a non-retryable extraction-shape error.
// rawResponse carries the unparsed completion text for diagnosis.
func NewMalformedExtractionError(rawResponse string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedExtraction,
		Message:   "Kon AI antwoord niet verwerken",
		Details:   fmt.Sprintf("%s (raw: %s)", err, rawResponse),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCustomerResolutionFailedError creates the recoverable resolver error.
// Callers log it and continue with a nil customer link.
func NewCustomerResolutionFailedError(company string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCustomerResolutionFailed,
		Message:   "Customer lookup or creation failed",
		Details:   fmt.Sprintf("company: %s, error: %s", company, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceError creates a retryable store error carrying the driver's
// message as detail.
func NewPersistenceError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceError,
		Message:   "Kon taak niet opslaan in database",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError creates the fallback error for unexpected failures.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Interne Server Fout",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to the HTTP status the API surfaces it with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAuthenticationError, ErrCodeSessionInvalid:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUpstreamUnavailable, ErrCodeMalformedExtraction,
		ErrCodePersistenceError, ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsRecoverable reports whether the pipeline swallows this error and
// continues instead of aborting the request.
func IsRecoverable(code ErrorCode) bool {
	return code == ErrCodeCustomerResolutionFailed
}

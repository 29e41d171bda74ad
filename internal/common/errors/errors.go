// Package errors provides the standardized error taxonomy shared by the
// preference store, the channel adapters, and the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	ErrCodeUnsupportedCarrier    ErrorCode = "UNSUPPORTED_CARRIER"
	ErrCodeProviderError         ErrorCode = "PROVIDER_ERROR"
	ErrCodeStoreError            ErrorCode = "STORE_ERROR"
	ErrCodeConfigurationError    ErrorCode = "CONFIGURATION_ERROR"
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
// Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Invalid request data",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateRegistrationError creates a non-retryable uniqueness violation
// error for the identity email.
func NewDuplicateRegistrationError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateRegistration,
		Message:   "This email is already registered.",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedCarrierError creates a non-retryable carrier lookup error.
func NewUnsupportedCarrierError(carrier string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedCarrier,
		Message:   "Unsupported carrier",
		Details:   fmt.Sprintf("carrier: %s", carrier),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderError creates a retryable transport error carrying the
// provider's message unmodified.
func NewProviderError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   fmt.Sprintf("Provider call failed for channel '%s'", channel),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreError creates a retryable persistence error.
func NewStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreError,
		Message:   "Persistence operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a non-retryable startup configuration error.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationError,
		Message:   "Server configuration error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Classification
// ==========================

// CodeOf extracts the taxonomy code from an error chain. Plain errors have
// no code and return the empty string.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// Is reports whether err carries the given taxonomy code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps a taxonomy code to the HTTP status the preference API
// returns for it.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeValidationFailed, ErrCodeDuplicateRegistration, ErrCodeUnsupportedCarrier:
		return http.StatusBadRequest
	case ErrCodeConfigurationError, ErrCodeProviderError, ErrCodeStoreError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether the error is worth retrying at a higher level.
// Batch dispatch never retries; this exists for operator tooling.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

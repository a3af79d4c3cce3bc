// Package errors provides standardized error handling for the discovery engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodePersonaFetchFailed ErrorCode = "PERSONA_FETCH_FAILED"
	ErrCodePersonaNotFound    ErrorCode = "PERSONA_NOT_FOUND"

	ErrCodeStrategyRequestFailed  ErrorCode = "STRATEGY_REQUEST_FAILED"
	ErrCodeStrategyRequestTimeout ErrorCode = "STRATEGY_REQUEST_TIMEOUT"
	ErrCodeStrategyPayloadInvalid ErrorCode = "STRATEGY_PAYLOAD_INVALID"

	ErrCodePlatformNotAvailable ErrorCode = "PLATFORM_NOT_AVAILABLE"
	ErrCodePlatformUnknown      ErrorCode = "PLATFORM_UNKNOWN"

	ErrCodeEmptySelection             ErrorCode = "EMPTY_SELECTION"
	ErrCodeActivationValidationFailed ErrorCode = "ACTIVATION_VALIDATION_FAILED"
	ErrCodeActivationFailed           ErrorCode = "ACTIVATION_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewPersonaFetchFailedError creates a retryable persona service error.
func NewPersonaFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersonaFetchFailed,
		Message:   "Persona service request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersonaNotFoundError creates a non-retryable persona lookup error.
func NewPersonaNotFoundError(personaID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePersonaNotFound,
		Message:   "Persona not found",
		Details:   fmt.Sprintf("personaId: %s", personaID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStrategyRequestFailedError creates a retryable strategy service error.
func NewStrategyRequestFailedError(platform string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStrategyRequestFailed,
		Message:   "Strategy analysis request failed",
		Details:   fmt.Sprintf("platform: %s, error: %s", platform, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStrategyRequestTimeoutError creates a retryable strategy timeout error.
func NewStrategyRequestTimeoutError(platform string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStrategyRequestTimeout,
		Message:   "Strategy analysis request timeout",
		Details:   fmt.Sprintf("platform: %s", platform),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStrategyPayloadInvalidError creates a non-retryable payload shape error.
func NewStrategyPayloadInvalidError(platform, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStrategyPayloadInvalid,
		Message:   "Strategy payload missing usable recommendations",
		Details:   fmt.Sprintf("platform: %s, %s", platform, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlatformNotAvailableError marks a platform that is registered but not live yet.
func NewPlatformNotAvailableError(platform string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlatformNotAvailable,
		Message:   "Platform is not available for discovery",
		Details:   fmt.Sprintf("platform: %s", platform),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlatformUnknownError creates a non-retryable registry lookup error.
func NewPlatformUnknownError(platform string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlatformUnknown,
		Message:   "Platform is not in the registry",
		Details:   fmt.Sprintf("platform: %s", platform),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptySelectionError creates a non-retryable activation validation error.
func NewEmptySelectionError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptySelection,
		Message:   "Select at least one source before starting monitoring",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivationValidationFailedError creates a non-retryable request shape error.
func NewActivationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivationValidationFailed,
		Message:   "Activation request failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewActivationFailedError creates a retryable monitoring service error.
func NewActivationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivationFailed,
		Message:   "Monitoring activation request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Strategy cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodePersonaFetchFailed,
		ErrCodeStrategyRequestFailed,
		ErrCodeActivationFailed,
		ErrCodeCacheUnavailable:
		return 3

	case ErrCodeStrategyRequestTimeout:
		return 2

	default:
		return 0 // Validation and availability errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PERSONA"):
		return "PERSONA"
	case strings.Contains(codeStr, "STRATEGY"):
		return "STRATEGY"
	case strings.Contains(codeStr, "PLATFORM"):
		return "PLATFORM"
	case strings.Contains(codeStr, "SELECTION") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "ACTIVATION"):
		return "ACTIVATION"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	default:
		return "OTHER"
	}
}

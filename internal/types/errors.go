package types

import (
	"fmt"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Error code constants. Components MUST use these constants instead of
// hardcoded strings so that callers can branch on error class.
const (
	// Upstream (transient; recovered locally by the poll loop)
	ErrCodeUpstreamFetch       ErrorCode = "upstream_fetch_failed"
	ErrCodeUpstreamDecode      ErrorCode = "upstream_decode_failed"
	ErrCodeUpstreamRateLimited ErrorCode = "upstream_rate_limited"
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"

	// Delivery (logged and dropped, never retried)
	ErrCodeDeliverySend   ErrorCode = "delivery_send_failed"
	ErrCodeDeliveryTarget ErrorCode = "delivery_invalid_target"

	// Rendering
	ErrCodeRenderFailed ErrorCode = "render_failed"

	// Configuration (fatal at startup)
	ErrCodeConfigMissing ErrorCode = "config_missing_value"
	ErrCodeConfigInvalid ErrorCode = "config_invalid_value"

	// Internal
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
)

// Transient reports whether the code describes a condition the poll loop
// recovers from locally: the tick treats the data as absent and continues.
// Configuration and internal errors are not transient.
func (c ErrorCode) Transient() bool {
	s := string(c)
	return strings.HasPrefix(s, "upstream_") || strings.HasPrefix(s, "delivery_") ||
		strings.HasPrefix(s, "render_")
}

// Fatal reports whether the code must abort process startup.
func (c ErrorCode) Fatal() bool {
	return strings.HasPrefix(string(c), "config_")
}

// AppError is the standard application error type. Domain errors are
// expressed as AppError to enable consistent logging, error-class branching,
// and error chain support.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message, and
// optional underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

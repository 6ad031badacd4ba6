package letta

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies which member of the error taxonomy an error belongs to.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in this package.
	KindUnknown Kind = iota
	// KindConnection means the request never reached the server.
	KindConnection
	// KindTimeout means the request exceeded its deadline.
	KindTimeout
	// KindAPI means the server answered with a non-2xx status.
	KindAPI
	// KindNotFound means a 404 was resolved to a concrete resource type and id.
	KindNotFound
	// KindDecode means a 2xx body did not match the expected shape.
	KindDecode
	// KindInvalidConfig means configuration or request validation failed before dispatch.
	KindInvalidConfig
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindAPI:
		return "api"
	case KindNotFound:
		return "not_found"
	case KindDecode:
		return "decode"
	case KindInvalidConfig:
		return "invalid_config"
	default:
		return "unknown"
	}
}

// ConnectionError reports a request that failed before any response was received.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("connection error: %v", e.Err)
	}

	return fmt.Sprintf("connection error: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a request that exceeded the configured timeout.
type TimeoutError struct {
	Method  string
	URL     string
	Elapsed time.Duration
	Err     error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s: %s %s", e.Elapsed.Round(time.Millisecond), e.Method, e.URL)
}

// Unwrap returns the underlying error.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from the Letta API. Code is the
// machine readable error code when the body carries one, Field names the
// offending field of a 422 validation error, RetryAfter is the server's
// back-off hint on 429 responses and ResourceType is the resource_type hint
// of a 404 body that carried no id.
type APIError struct {
	StatusCode   int           `json:"status_code"             yaml:"status_code"`
	Message      string        `json:"message"                 yaml:"message"`
	Code         string        `json:"code,omitempty"          yaml:"code,omitempty"`
	Field        string        `json:"field,omitempty"         yaml:"field,omitempty"`
	RetryAfter   time.Duration `json:"retry_after,omitempty"   yaml:"retry_after,omitempty"`
	ResourceType string        `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`
	Body         []byte        `json:"-"                       yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	if e.Code != "" {
		msg += " (code: " + e.Code + ")"
	}

	if e.Field != "" {
		msg += " (field: " + e.Field + ")"
	}

	return msg
}

// NotFoundError is a 404 that was resolved to a resource type and identifier.
type NotFoundError struct {
	ResourceType string `json:"resource_type"     yaml:"resource_type"`
	ID           string `json:"id"                yaml:"id"`
	Message      string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.ResourceType, e.ID)
}

// DecodeError reports a successful response whose body could not be decoded.
type DecodeError struct {
	Target string
	Body   []byte
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response into %s: %v", e.Target, e.Err)
}

// Unwrap returns the underlying decoding error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidConfigError reports configuration or request validation failures
// caught before any network call. A request interceptor rejecting a call is
// reported the same way, with Field "interceptor" and the rejection in Err.
type InvalidConfigError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}

	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// Static errors that can be wrapped with context.
var (
	ErrNoMoreItems   = errors.New("no more items")
	ErrIDRequired    = errors.New("id is required")
	ErrJobFailed     = errors.New("job failed")
	ErrPollTimeout   = errors.New("timeout waiting for job to complete")
	ErrNilParameters = errors.New("parameters are required")

	ErrInvalidID        = errors.New("invalid resource id")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrEmptyPayload     = errors.New("empty payload")
	ErrRateLimitBurst   = errors.New("rate limiter admits no requests")
)

// KindOf reports which taxonomy variant err belongs to.
func KindOf(err error) Kind {
	var (
		connErr     *ConnectionError
		timeoutErr  *TimeoutError
		notFoundErr *NotFoundError
		apiErr      *APIError
		decodeErr   *DecodeError
		configErr   *InvalidConfigError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &connErr):
		return KindConnection
	case errors.As(err, &notFoundErr):
		return KindNotFound
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &configErr):
		return KindInvalidConfig
	default:
		return KindUnknown
	}
}

// IsNotFound checks if the error is a resolved not found error or a bare 404.
func IsNotFound(err error) bool {
	notFoundErr := &NotFoundError{}
	if errors.As(err, &notFoundErr) {
		return true
	}

	return StatusCode(err) == 404
}

// IsConnection checks if the error is a connection error.
func IsConnection(err error) bool {
	return KindOf(err) == KindConnection
}

// IsTimeout checks if the error is a timeout error.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}

// IsAPIError checks if the error is a generic API error.
func IsAPIError(err error) bool {
	return KindOf(err) == KindAPI
}

// IsDecode checks if the error is a decode error.
func IsDecode(err error) bool {
	return KindOf(err) == KindDecode
}

// IsInvalidConfig checks if the error is a configuration or validation error.
func IsInvalidConfig(err error) bool {
	return KindOf(err) == KindInvalidConfig
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == 401
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == 403
}

// IsRateLimited checks if the error is a 429 response.
func IsRateLimited(err error) bool {
	return StatusCode(err) == 429
}

// IsRetryable reports whether a caller-driven retry could succeed.
// Only connection failures and timeouts qualify.
func IsRetryable(err error) bool {
	kind := KindOf(err)

	return kind == KindConnection || kind == KindTimeout
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	notFoundErr := &NotFoundError{}
	if errors.As(err, &notFoundErr) {
		return 404
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

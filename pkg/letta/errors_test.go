package letta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "connection",
			err:      &ConnectionError{Method: "GET", URL: "http://localhost:8283/v1/agents", Err: errors.New("connection refused")},
			expected: "connection error: GET http://localhost:8283/v1/agents: connection refused",
		},
		{
			name:     "connection without request",
			err:      &ConnectionError{Err: errors.New("request interceptor failed")},
			expected: "connection error: request interceptor failed",
		},
		{
			name:     "timeout",
			err:      &TimeoutError{Method: "GET", URL: "/v1/tools/", Elapsed: 1500 * time.Millisecond},
			expected: "request timed out after 1.5s: GET /v1/tools/",
		},
		{
			name:     "api with code and field",
			err:      &APIError{StatusCode: 422, Message: "invalid", Code: "E42", Field: "name"},
			expected: "API error (status 422): invalid (code: E42) (field: name)",
		},
		{
			name:     "not found",
			err:      &NotFoundError{ResourceType: "Agent", ID: "agent-123"},
			expected: "Agent with ID agent-123 not found",
		},
		{
			name:     "decode",
			err:      &DecodeError{Target: "letta.Agent", Err: errors.New("unexpected EOF")},
			expected: "decoding response into letta.Agent: unexpected EOF",
		},
		{
			name:     "invalid config",
			err:      &InvalidConfigError{Field: "base_url", Reason: "must be absolute"},
			expected: "invalid configuration: base_url: must be absolute",
		},
		{
			name:     "invalid config without field",
			err:      &InvalidConfigError{Reason: "no auth"},
			expected: "invalid configuration: no auth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"nil", nil, KindUnknown},
		{"foreign", errors.New("boom"), KindUnknown},
		{"connection", &ConnectionError{Err: errors.New("refused")}, KindConnection},
		{"timeout", &TimeoutError{Err: context.DeadlineExceeded}, KindTimeout},
		{"api", &APIError{StatusCode: 500}, KindAPI},
		{"not found", &NotFoundError{ResourceType: "Tool", ID: "x"}, KindNotFound},
		{"decode", &DecodeError{Err: errors.New("bad")}, KindDecode},
		{"invalid config", &InvalidConfigError{Reason: "x"}, KindInvalidConfig},
		{"wrapped", fmt.Errorf("listing agents: %w", &APIError{StatusCode: 503}), KindAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "invalid_config", KindInvalidConfig.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	unauthorized := &APIError{StatusCode: http.StatusUnauthorized}
	forbidden := &APIError{StatusCode: http.StatusForbidden}
	limited := &APIError{StatusCode: http.StatusTooManyRequests}
	bare404 := &APIError{StatusCode: http.StatusNotFound}
	resolved := &NotFoundError{ResourceType: "Agent", ID: "agent-1"}

	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, IsForbidden(forbidden))
	assert.True(t, IsRateLimited(limited))
	assert.True(t, IsNotFound(bare404))
	assert.True(t, IsNotFound(resolved))
	assert.Equal(t, 404, StatusCode(resolved))
	assert.Zero(t, StatusCode(errors.New("other")))

	assert.True(t, IsRetryable(&ConnectionError{Err: errors.New("reset")}))
	assert.True(t, IsRetryable(&TimeoutError{}))
	assert.False(t, IsRetryable(limited))
	assert.False(t, IsRetryable(&InvalidConfigError{}))

	timeout := &TimeoutError{Err: context.DeadlineExceeded}
	require.ErrorIs(t, timeout, context.DeadlineExceeded)
	assert.True(t, IsTimeout(timeout))
	assert.False(t, IsConnection(timeout))
}

//nolint:funlen
func TestClassifyResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.NoError(t, err)
			},
		},
		{
			name:   "not found with id wording",
			status: http.StatusNotFound,
			body:   `{"detail":"Agent with ID agent-123 not found"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var notFoundErr *NotFoundError
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "Agent", notFoundErr.ResourceType)
				assert.Equal(t, "agent-123", notFoundErr.ID)
			},
		},
		{
			name:   "not found with quoted name",
			status: http.StatusNotFound,
			body:   `{"detail":"Tool 'send_message' not found"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var notFoundErr *NotFoundError
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "Tool", notFoundErr.ResourceType)
				assert.Equal(t, "send_message", notFoundErr.ID)
			},
		},
		{
			name:   "not found with colon wording",
			status: http.StatusNotFound,
			body:   `{"detail":"No source found with ID: source-123"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var notFoundErr *NotFoundError
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "source", notFoundErr.ResourceType)
				assert.Equal(t, "source-123", notFoundErr.ID)
			},
		},
		{
			name:   "not found with structured fields",
			status: http.StatusNotFound,
			body:   `{"message":"gone","resource_type":"Block","resource_id":"block-1"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var notFoundErr *NotFoundError
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "Block", notFoundErr.ResourceType)
				assert.Equal(t, "block-1", notFoundErr.ID)
				assert.Equal(t, "gone", notFoundErr.Message)
			},
		},
		{
			name:   "unresolved 404 stays an api error",
			status: http.StatusNotFound,
			body:   `{"detail":"Not Found"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
				assert.Equal(t, "Not Found", apiErr.Message)
				assert.True(t, IsNotFound(err))
				assert.Equal(t, KindAPI, KindOf(err))
			},
		},
		{
			name:   "fastapi validation list",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","name"],"msg":"field required","type":"missing"}]}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "name", apiErr.Field)
				assert.Equal(t, "body.name: field required", apiErr.Message)
			},
		},
		{
			name:   "validation field from message",
			status: http.StatusUnprocessableEntity,
			body:   `{"message":"Field 'limit' must be positive","code":"E42"}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "limit", apiErr.Field)
				assert.Equal(t, "E42", apiErr.Code)
			},
		},
		{
			name:   "rate limit header",
			status: http.StatusTooManyRequests,
			body:   `{"detail":"slow down"}`,
			header: http.Header{"Retry-After": []string{"7"}},
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
				assert.True(t, IsRateLimited(err))
			},
		},
		{
			name:   "rate limit body hint",
			status: http.StatusTooManyRequests,
			body:   `{"detail":"slow down","retry_after":1.5}`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, 1500*time.Millisecond, apiErr.RetryAfter)
			},
		},
		{
			name:   "html error page",
			status: http.StatusInternalServerError,
			body:   `<html><body><pre>Internal failure</pre></body></html>`,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Internal failure", apiErr.Message)
			},
		},
		{
			name:   "empty body",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Bad Gateway", apiErr.Message)
			},
		},
		{
			name:   "uncommon status",
			status: http.StatusTeapot,
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "HTTP 418", apiErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, ClassifyResponse(tt.status, []byte(tt.body), tt.header))
		})
	}
}

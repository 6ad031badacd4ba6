package letta

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/fivetwenty-io/letta-client/internal/constants"
)

// Environment selects a well-known Letta deployment.
type Environment int

const (
	// Cloud is the hosted Letta API.
	Cloud Environment = iota
	// SelfHosted is a local or self-managed Letta server.
	SelfHosted
)

// BaseURL returns the environment's default endpoint.
func (e Environment) BaseURL() string {
	if e == SelfHosted {
		return constants.SelfHostedBaseURL
	}

	return constants.CloudBaseURL
}

// RequiresAuth reports whether the environment rejects anonymous requests.
func (e Environment) RequiresAuth() bool {
	return e == Cloud
}

// String returns the environment name.
func (e Environment) String() string {
	if e == SelfHosted {
		return "self-hosted"
	}

	return "cloud"
}

// ClientConfig holds everything needed to build a client. It is immutable:
// every With method returns a modified copy, so a config can be derived and
// shared across goroutines. Build one with NewClientConfig.
type ClientConfig struct {
	baseURL      *url.URL
	auth         AuthConfig
	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	retryOn5xx   bool
	headers      http.Header
	userAgent    string
	logger       Logger
	debug        bool
	interceptors *InterceptorChain
}

// NewClientConfig validates rawURL and returns a config with default timeout
// and retry policy. It fails with *InvalidConfigError unless rawURL is an
// absolute URL with a scheme and host. No network I/O is performed.
func NewClientConfig(rawURL string) (ClientConfig, error) {
	parsed, err := parseBaseURL(rawURL)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		baseURL:      parsed,
		timeout:      constants.DefaultHTTPTimeout,
		maxRetries:   constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
		headers:      http.Header{},
		userAgent:    constants.DefaultUserAgent,
	}, nil
}

// ConfigForEnvironment returns a config pointed at env's default endpoint.
func ConfigForEnvironment(env Environment) ClientConfig {
	cfg, _ := NewClientConfig(env.BaseURL())

	return cfg
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, &InvalidConfigError{Field: "base_url", Reason: "base URL is required"}
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, &InvalidConfigError{Field: "base_url", Reason: err.Error()}
	}

	if !parsed.IsAbs() || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &InvalidConfigError{Field: "base_url", Reason: "must be an absolute URL with scheme and host: " + trimmed}
	}

	return parsed, nil
}

// WithAuth returns a copy using auth.
func (c ClientConfig) WithAuth(auth AuthConfig) ClientConfig {
	c.auth = auth

	return c
}

// WithTimeout returns a copy with a per-request timeout.
func (c ClientConfig) WithTimeout(timeout time.Duration) ClientConfig {
	c.timeout = timeout

	return c
}

// WithMaxRetries returns a copy allowing n retries of idempotent GETs that
// failed with a connection error or timeout.
func (c ClientConfig) WithMaxRetries(n int) ClientConfig {
	c.maxRetries = n

	return c
}

// WithRetryWait returns a copy with the backoff bounds used between retries.
func (c ClientConfig) WithRetryWait(minWait, maxWait time.Duration) ClientConfig {
	c.retryWaitMin = minWait
	c.retryWaitMax = maxWait

	return c
}

// WithRetryOn5xx returns a copy that also retries GETs answered with 5xx.
func (c ClientConfig) WithRetryOn5xx(enabled bool) ClientConfig {
	c.retryOn5xx = enabled

	return c
}

// WithHeader returns a copy that sends key: value on every request.
func (c ClientConfig) WithHeader(key, value string) ClientConfig {
	c.headers = c.headers.Clone()
	if c.headers == nil {
		c.headers = http.Header{}
	}

	c.headers.Set(key, value)

	return c
}

// WithProject returns a copy scoped to a Letta Cloud project.
func (c ClientConfig) WithProject(projectID string) ClientConfig {
	return c.WithHeader(constants.HeaderProject, projectID)
}

// WithUserID returns a copy that identifies the end user on every request.
func (c ClientConfig) WithUserID(userID string) ClientConfig {
	return c.WithHeader(constants.HeaderUserID, userID)
}

// WithUserAgent returns a copy overriding the User-Agent header.
func (c ClientConfig) WithUserAgent(userAgent string) ClientConfig {
	c.userAgent = userAgent

	return c
}

// WithLogger returns a copy that logs through logger.
func (c ClientConfig) WithLogger(logger Logger) ClientConfig {
	c.logger = logger

	return c
}

// WithDebug returns a copy with request/response debug logging toggled.
func (c ClientConfig) WithDebug(debug bool) ClientConfig {
	c.debug = debug

	return c
}

// WithInterceptors returns a copy that runs chain around every request.
// The chain must be fully populated before the client is built.
func (c ClientConfig) WithInterceptors(chain *InterceptorChain) ClientConfig {
	c.interceptors = chain

	return c
}

// BaseURL returns the endpoint as a string.
func (c ClientConfig) BaseURL() string {
	if c.baseURL == nil {
		return ""
	}

	return c.baseURL.String()
}

// Auth returns the authentication config.
func (c ClientConfig) Auth() AuthConfig { return c.auth }

// Timeout returns the per-request timeout.
func (c ClientConfig) Timeout() time.Duration { return c.timeout }

// MaxRetries returns the retry budget for idempotent requests.
func (c ClientConfig) MaxRetries() int { return c.maxRetries }

// RetryWaitMin returns the minimum backoff.
func (c ClientConfig) RetryWaitMin() time.Duration { return c.retryWaitMin }

// RetryWaitMax returns the maximum backoff.
func (c ClientConfig) RetryWaitMax() time.Duration { return c.retryWaitMax }

// RetryOn5xx reports whether GETs answered with 5xx are retried.
func (c ClientConfig) RetryOn5xx() bool { return c.retryOn5xx }

// Headers returns a copy of the extra headers.
func (c ClientConfig) Headers() http.Header { return c.headers.Clone() }

// UserAgent returns the User-Agent header value.
func (c ClientConfig) UserAgent() string { return c.userAgent }

// Logger returns the configured logger, or nil.
func (c ClientConfig) Logger() Logger { return c.logger }

// Debug reports whether debug logging is enabled.
func (c ClientConfig) Debug() bool { return c.debug }

// Interceptors returns the interceptor chain, or nil.
func (c ClientConfig) Interceptors() *InterceptorChain { return c.interceptors }

// Validate checks every invariant and reports all violations at once.
func (c ClientConfig) Validate() error {
	var result *multierror.Error

	if c.baseURL == nil {
		result = multierror.Append(result, &InvalidConfigError{Field: "base_url", Reason: "base URL is required"})
	} else if _, err := parseBaseURL(c.baseURL.String()); err != nil {
		result = multierror.Append(result, err)
	}

	if c.timeout < 0 {
		result = multierror.Append(result, &InvalidConfigError{Field: "timeout", Reason: "must not be negative"})
	}

	if c.maxRetries < 0 {
		result = multierror.Append(result, &InvalidConfigError{Field: "max_retries", Reason: "must not be negative"})
	}

	if c.retryWaitMin < 0 || c.retryWaitMax < c.retryWaitMin {
		result = multierror.Append(result, &InvalidConfigError{Field: "retry_wait", Reason: "requires 0 <= min <= max"})
	}

	if c.auth.Kind() == AuthAPIKey && !validHeaderName(c.auth.HeaderName()) {
		result = multierror.Append(result, &InvalidConfigError{Field: "auth", Reason: "invalid API key header name"})
	}

	for name := range c.headers {
		if !validHeaderName(name) {
			result = multierror.Append(result, &InvalidConfigError{Field: "headers", Reason: "invalid header name " + name})
		}
	}

	if result == nil {
		return nil
	}

	if len(result.Errors) == 1 {
		return result.Errors[0]
	}

	return result
}

// validHeaderName accepts RFC 7230 token characters.
func validHeaderName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if r > 0x7e || r <= ' ' || strings.ContainsRune(`"(),/:;<=>?@[\]{}`, r) {
			return false
		}
	}

	return true
}

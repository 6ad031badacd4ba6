// Package http implements the transport shared by every Letta resource
// client: URL resolution, authentication, retries, interceptors and error
// classification.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// Client performs HTTP requests against the Letta API. It is safe for
// concurrent use; all configuration is fixed at construction.
type Client struct {
	baseURL      string
	auth         letta.AuthConfig
	httpClient   *retryablehttp.Client
	logger       letta.Logger
	debug        bool
	timeout      time.Duration
	userAgent    string
	headers      http.Header
	interceptors *letta.InterceptorChain
	retryOn5xx   bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger letta.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig sets the retry budget and backoff bounds.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithRetryOn5xx also retries GET requests answered with a 5xx status.
func WithRetryOn5xx(enabled bool) Option {
	return func(c *Client) {
		c.retryOn5xx = enabled
	}
}

// WithTimeout bounds each call, retries included. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHeaders adds headers sent on every request.
func WithHeaders(headers http.Header) Option {
	return func(c *Client) {
		for key, values := range headers {
			for _, value := range values {
				c.headers.Add(key, value)
			}
		}
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *letta.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. for custom TLS.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a new HTTP client.
func NewClient(baseURL string, auth letta.AuthConfig, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       auth,
		httpClient: retryClient,
		timeout:    constants.DefaultHTTPTimeout,
		userAgent:  constants.DefaultUserAgent,
		headers:    http.Header{},
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.CheckRetry = client.checkRetry

	if client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the endpoint requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// JoinURL resolves path against base with exactly one slash between them.
// A trailing slash on path is kept; some endpoints require it.
func JoinURL(base, path string) string {
	if path == "" {
		return strings.TrimRight(base, "/")
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

type idempotentKey struct{}

// Do performs an HTTP request. Non-2xx responses are returned together
// with the classified error.
//
//nolint:funlen,cyclop // The request lifecycle reads best in one place
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := JoinURL(c.baseURL, req.Path)
	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(fullURL, "?") {
			separator = "&"
		}

		fullURL += separator + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, &letta.InvalidConfigError{Field: "body", Reason: fmt.Sprintf("encoding request body: %v", err), Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if req.Method == http.MethodGet {
		ctx = context.WithValue(ctx, idempotentKey{}, true)
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, &letta.InvalidConfigError{Field: "url", Reason: err.Error()}
	}

	c.setHeaders(httpReq.Header, req, contentType)

	intercepted := &letta.Request{
		Method:   req.Method,
		Path:     httpReq.URL.Path,
		Headers:  httpReq.Header.Clone(),
		Body:     body,
		Metadata: map[string]interface{}{},
	}

	start := time.Now()

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		rejectErr := classifyInterceptorError(ctx, req.Method, fullURL, start, err)
		c.runResponseInterceptors(ctx, intercepted, &letta.Response{Error: rejectErr})

		return nil, rejectErr
	}

	httpReq.Header = intercepted.Headers

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := classifyTransportError(req.Method, fullURL, start, err)
		c.runResponseInterceptors(ctx, intercepted, &letta.Response{Error: transportErr})

		return nil, transportErr
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		readErr := classifyTransportError(req.Method, fullURL, start, err)
		c.runResponseInterceptors(ctx, intercepted, &letta.Response{StatusCode: resp.StatusCode, Error: readErr})

		return nil, readErr
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(respBody),
		})
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	c.runResponseInterceptors(ctx, intercepted, &letta.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	})

	classified := letta.ClassifyResponse(resp.StatusCode, respBody, resp.Header)
	if classified != nil {
		return response, classified
	}

	return response, nil
}

func (c *Client) setHeaders(header http.Header, req *Request, contentType string) {
	header.Set("Accept", "application/json")
	header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	for key, values := range c.headers {
		header.Del(key)

		for _, value := range values {
			header.Add(key, value)
		}
	}

	c.auth.Apply(header)

	for key, value := range req.Headers {
		header.Set(key, value)
	}
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *letta.Request, resp *letta.Response) {
	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"path":  req.Path,
			"error": err.Error(),
		})
	}
}

// checkRetry retries only idempotent GETs, and only after a transport
// failure or, when enabled, a 5xx answer. 4xx responses are final.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	idempotent, _ := ctx.Value(idempotentKey{}).(bool)
	if !idempotent {
		return false, nil
	}

	if err != nil {
		retry, _ := retryablehttp.DefaultRetryPolicy(ctx, nil, err)

		return retry, nil
	}

	if resp != nil && resp.StatusCode >= http.StatusInternalServerError && c.retryOn5xx {
		return true, nil
	}

	return false, nil
}

func classifyTransportError(method, rawURL string, start time.Time, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &letta.TimeoutError{Method: method, URL: rawURL, Elapsed: time.Since(start), Err: err}
	}

	return &letta.ConnectionError{Method: method, URL: rawURL, Err: err}
}

// classifyInterceptorError maps a request interceptor failure. Deadline and
// cancellation errors keep their transport meaning; any other rejection is
// a policy decision and is reported as a non-retryable InvalidConfigError.
func classifyInterceptorError(ctx context.Context, method, rawURL string, start time.Time, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &letta.TimeoutError{Method: method, URL: rawURL, Elapsed: time.Since(start), Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &letta.ConnectionError{Method: method, URL: rawURL, Err: err}
	}

	return &letta.InvalidConfigError{Field: "interceptor", Reason: err.Error(), Err: err}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// Send performs req and decodes a successful response body into T.
func Send[T any](ctx context.Context, c *Client, req *Request) (T, error) {
	var result T

	resp, err := c.Do(ctx, req)
	if err != nil {
		return result, err
	}

	err = Decode(resp.Body, &result)
	if err != nil {
		return result, err
	}

	return result, nil
}

// SendNoContent performs req and discards the response body.
func SendNoContent(ctx context.Context, c *Client, req *Request) error {
	_, err := c.Do(ctx, req)

	return err
}

// Decode unmarshals body into target, reporting failures as *letta.DecodeError.
func Decode(body []byte, target interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(body))

	err := decoder.Decode(target)
	if err != nil {
		return &letta.DecodeError{
			Target: strings.TrimPrefix(fmt.Sprintf("%T", target), "*"),
			Body:   body,
			Err:    err,
		}
	}

	return nil
}

// leveledLogger routes retryablehttp's logging to the client logger.
type leveledLogger struct {
	logger letta.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

// Debug drops per-attempt output; Do logs each exchange itself.
func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}

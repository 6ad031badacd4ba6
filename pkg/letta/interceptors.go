package letta

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/letta-client/internal/constants"
)

// Request is the view of an outgoing HTTP request given to interceptors.
// Header changes made by request interceptors are sent on the wire.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response is the view of a completed exchange given to interceptors.
// StatusCode is 0 and Error is set when no response was received.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors. Populate it before the
// client is built; it is read concurrently afterwards.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// ExecuteRequestInterceptors runs all request interceptors in order.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors in order.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil || resp.StatusCode >= 400 {
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// RateLimitInterceptor blocks until limiter admits the request or ctx ends.
// A wait that would outlast the ctx deadline fails at once with an error
// wrapping context.DeadlineExceeded.
func RateLimitInterceptor(limiter *rate.Limiter) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		reservation := limiter.Reserve()
		if !reservation.OK() {
			return ErrRateLimitBurst
		}

		delay := reservation.Delay()
		if delay == 0 {
			return nil
		}

		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
			reservation.Cancel()

			return fmt.Errorf("rate limit wait of %s: %w", delay.Round(time.Millisecond), context.DeadlineExceeded)
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			reservation.Cancel()

			return fmt.Errorf("rate limit wait: %w", ctx.Err())
		}
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// RequestIDInterceptor tags each request with a random X-Request-ID unless
// the caller already set one. The id is also stored in Metadata["request_id"].
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		id := req.Headers.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			req.Headers.Set(constants.HeaderRequestID, id)
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["request_id"] = id

		return nil
	}
}

// MetricsCollector records request counts, latencies and in-flight calls
// as Prometheus metrics.
type MetricsCollector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

// NewMetricsCollector creates the collectors and registers them with reg
// when reg is non-nil.
func NewMetricsCollector(reg prometheus.Registerer) (*MetricsCollector, error) {
	collector := &MetricsCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "letta",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of Letta API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "letta",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of Letta API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "letta",
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "Letta API requests started but not yet answered.",
		}, []string{"method"}),
	}

	if reg != nil {
		for _, c := range collector.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("registering metrics: %w", err)
			}
		}
	}

	return collector, nil
}

// Collectors returns the underlying Prometheus collectors.
func (m *MetricsCollector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.duration, m.inFlight}
}

// MetricsRequestInterceptor records the request start time and counts the
// request as in flight until MetricsResponseInterceptor sees it finish.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["start_time"] = time.Now()
		req.Metadata["metrics_in_flight"] = true

		collector.inFlight.WithLabelValues(req.Method).Inc()

		return nil
	}
}

// MetricsResponseInterceptor records response metrics.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		route := RouteTemplate(req.Path)

		status := "error"
		if resp.StatusCode > 0 {
			status = strconv.Itoa(resp.StatusCode)
		}

		collector.requests.WithLabelValues(req.Method, route, status).Inc()

		if counted, _ := req.Metadata["metrics_in_flight"].(bool); counted {
			collector.inFlight.WithLabelValues(req.Method).Dec()
			delete(req.Metadata, "metrics_in_flight")
		}

		if startTime, ok := req.Metadata["start_time"].(time.Time); ok {
			collector.duration.WithLabelValues(req.Method, route).Observe(time.Since(startTime).Seconds())
		}

		return nil
	}
}

// RouteTemplate replaces Letta resource ids in path with ":id" so metric
// labels stay bounded.
func RouteTemplate(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if IsResourceID(segment) {
			segments[i] = ":id"
		}
	}

	return strings.Join(segments, "/")
}

// TracingInterceptors returns a request/response pair that wraps every call
// in a client span and propagates the W3C trace context to the server.
func TracingInterceptors(tracer trace.Tracer) (RequestInterceptor, ResponseInterceptor) {
	propagator := propagation.TraceContext{}

	onRequest := func(ctx context.Context, req *Request) error {
		spanCtx, span := tracer.Start(ctx, "letta "+req.Method+" "+RouteTemplate(req.Path),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.Path),
			),
		)

		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		propagator.Inject(spanCtx, propagation.HeaderCarrier(req.Headers))

		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["span"] = span

		return nil
	}

	onResponse := func(ctx context.Context, req *Request, resp *Response) error {
		span, ok := req.Metadata["span"].(trace.Span)
		if !ok {
			return nil
		}
		defer span.End()

		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

		switch {
		case resp.Error != nil:
			span.RecordError(resp.Error)
			span.SetStatus(codes.Error, resp.Error.Error())
		case resp.StatusCode >= 400:
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		}

		return nil
	}

	return onRequest, onResponse
}

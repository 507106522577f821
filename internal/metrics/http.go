package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// httpMetrics holds HTTP-specific metric instruments.
type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
	requestSize    metric.Int64Histogram
	responseSize   metric.Int64Histogram
}

func newHTTPMetrics(meter metric.Meter, namespace string) (*httpMetrics, error) {
	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestSize, err := meter.Int64Histogram(
		fmt.Sprintf("%s_http_request_size_bytes", namespace),
		metric.WithDescription("HTTP request body size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	responseSize, err := meter.Int64Histogram(
		fmt.Sprintf("%s_http_response_size_bytes", namespace),
		metric.WithDescription("HTTP response body size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
		requestSize:    requestSize,
		responseSize:   responseSize,
	}, nil
}

// HTTPMetricsMiddleware returns a Gin middleware that records HTTP request metrics.
// Requests are labeled with method, path and status_code where path is the route
// pattern (e.g., /api/v1/download/:file_id) so artifact ids never become labels.
// Body sizes are recorded to track encrypted upload and redacted download volume.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	metrics, err := newHTTPMetrics(meterProvider.Meter(namespace), namespace)
	if err != nil {
		// Metrics are best effort, never block traffic.
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.record(c.Request.Context(), c, time.Since(start))
	}
}

func (m *httpMetrics) record(ctx context.Context, c *gin.Context, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", c.Request.Method),
		attribute.String("path", sanitizePath(c.FullPath())),
		attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
	)

	m.requestCounter.Add(ctx, 1, attrs)
	m.durationHisto.Record(ctx, duration.Seconds(), attrs)
	if c.Request.ContentLength > 0 {
		m.requestSize.Record(ctx, c.Request.ContentLength, attrs)
	}
	if size := c.Writer.Size(); size > 0 {
		m.responseSize.Record(ctx, int64(size), attrs)
	}
}

// sanitizePath returns the matched route pattern, or "unknown" when no route matched.
func sanitizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

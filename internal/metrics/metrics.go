package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDuration records request duration in seconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	RegisterCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_register_total",
			Help: "Total number of registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	LoginCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// AuthErrorCounter is labelled by error type, e.g. "invalid_token".
	AuthErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	// ResourceOperationCounter counts tenant and template operations.
	ResourceOperationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_operations_total",
			Help: "Total number of tenant and template operations",
		},
		[]string{"resource", "operation"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RecordRegistration counts one registration attempt.
func RecordRegistration(outcome string) {
	RegisterCounter.WithLabelValues(outcome).Inc()
}

// RecordLogin counts one login attempt.
func RecordLogin(outcome string) {
	LoginCounter.WithLabelValues(outcome).Inc()
}

// RecordAuthError counts one authentication failure.
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordResourceOperation counts one tenant/template operation.
func RecordResourceOperation(resource, operation string) {
	ResourceOperationCounter.WithLabelValues(resource, operation).Inc()
}

// HTTPMetrics records request metrics for one service.
type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics creates a new HTTP metrics collector for a specific service
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware records request count and latency, labelled by route template
// so path parameters do not explode cardinality.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		RequestCounter.WithLabelValues(m.ServiceName, method, path, status).Inc()
		RequestDuration.WithLabelValues(m.ServiceName, method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

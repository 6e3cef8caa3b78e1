package observability

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Permission evaluation metrics
	PermissionChecksTotal   *prometheus.CounterVec
	PermissionCheckDuration *prometheus.HistogramVec
	PermissionWritesTotal   *prometheus.CounterVec
	ProposalQueriesTotal    *prometheus.CounterVec
	AccessibleProposals     *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitedTotal    *prometheus.CounterVec
	RateLimitRedisError prometheus.Counter

	// Database metrics
	DBConnectionsActive prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quorum_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quorum_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quorum_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		PermissionChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quorum_permission_checks_total",
				Help: "Total number of permission evaluations",
			},
			[]string{"resource", "outcome"},
		),
		PermissionCheckDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quorum_permission_check_duration_seconds",
				Help:    "Permission evaluation duration in seconds",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"resource"},
		),
		PermissionWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quorum_permission_writes_total",
				Help: "Total number of permission assignment writes",
			},
			[]string{"operation", "status"},
		),
		ProposalQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quorum_proposal_queries_total",
				Help: "Total number of proposal accessibility queries",
			},
			[]string{"only_assigned"},
		),
		AccessibleProposals: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quorum_accessible_proposals",
				Help:    "Number of proposals returned per accessibility query",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"only_assigned"},
		),

		RateLimitedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quorum_rate_limited_total",
				Help: "Total number of rate-limited requests",
			},
			[]string{"limiter"},
		),
		RateLimitRedisError: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quorum_rate_limit_redis_errors_total",
				Help: "Total number of Redis errors during rate limiting",
			},
		),

		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quorum_db_connections_active",
				Help: "Number of active database connections",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quorum_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBWaitCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quorum_db_connections_wait_count",
				Help: "Total number of connections waited for",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.PermissionChecksTotal,
		m.PermissionCheckDuration,
		m.PermissionWritesTotal,
		m.ProposalQueriesTotal,
		m.AccessibleProposals,
		m.RateLimitedTotal,
		m.RateLimitRedisError,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
		m.DBWaitCount,
	)

	return m
}

// ObservePermissionCheck records one permission evaluation
func (m *Metrics) ObservePermissionCheck(resource, outcome string, duration time.Duration) {
	m.PermissionChecksTotal.WithLabelValues(resource, outcome).Inc()
	m.PermissionCheckDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// ObserveProposalQuery records one accessibility query and its result size
func (m *Metrics) ObserveProposalQuery(onlyAssigned bool, count int) {
	label := strconv.FormatBool(onlyAssigned)
	m.ProposalQueriesTotal.WithLabelValues(label).Inc()
	m.AccessibleProposals.WithLabelValues(label).Observe(float64(count))
}

// UpdateDBStats copies connection pool stats into the gauges
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.DBConnectionsActive.Set(float64(stats.InUse))
	m.DBConnectionsIdle.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

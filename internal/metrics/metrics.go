package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Result writes by operation (create, update, delete) and resulting status
	ResultWrites *prometheus.CounterVec

	// HTTP requests by method and status code
	Requests *prometheus.CounterVec

	RequestLatency prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ResultWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "driving_test_result_writes_total",
			Help: "Total result writes by operation and overall status",
		}, []string{"operation", "overall_status"}),

		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "driving_test_http_requests_total",
			Help: "Total HTTP requests by method and status code",
		}, []string{"method", "status"}),

		RequestLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "driving_test_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementResultWrite records a persisted create, update or delete.
func (m *Metrics) IncrementResultWrite(operation, overallStatus string) {
	if m != nil {
		m.ResultWrites.WithLabelValues(operation, overallStatus).Inc()
	}
}

func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
		m.RequestLatency.Observe(d.Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementResultWrite(t *testing.T) {
	m := New()

	m.IncrementResultWrite("create", "passed")
	m.IncrementResultWrite("create", "passed")
	m.IncrementResultWrite("delete", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResultWrites.WithLabelValues("create", "passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResultWrites.WithLabelValues("delete", "")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementResultWrite("create", "passed")
		m.ObserveRequest(http.MethodGet, http.StatusOK, time.Millisecond)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodPost, http.StatusCreated, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `driving_test_http_requests_total{method="POST",status="201"} 1`)
	assert.Contains(t, rec.Body.String(), "driving_test_http_request_duration_seconds_count 1")
}

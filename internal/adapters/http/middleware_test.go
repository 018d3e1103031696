package http

import (
	"net/http"
	"testing"

	"github.com/carbondash/carbondash/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	// rps=1, burst=2: the third immediate request must be rejected.
	handler := NewHandler(newFakeService(), WithRateLimit(1, 2))

	for i := 0; i < 2; i++ {
		rr := doRequest(t, handler, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doRequest(t, handler, http.MethodGet, "/health")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestRateLimiter_DisabledWhenZero(t *testing.T) {
	handler := NewHandler(newFakeService(), WithRateLimit(0, 0))

	for i := 0; i < 10; i++ {
		rr := doRequest(t, handler, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestInstrumentation(t *testing.T) {
	metrics := observability.New()
	handler := NewHandler(newFakeService(), WithMetrics(metrics))

	doRequest(t, handler, http.MethodGet, "/api/v1/areas")
	doRequest(t, handler, http.MethodGet, "/api/v1/areas")
	doRequest(t, handler, http.MethodGet, "/api/v1/series") // 400: missing areas

	ok := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("/api/v1/areas", http.MethodGet, "200"))
	assert.Equal(t, 2.0, ok)

	bad := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("/api/v1/series", http.MethodGet, "400"))
	assert.Equal(t, 1.0, bad)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.New()
	handler := NewHandler(newFakeService(), WithMetrics(metrics))

	rr := doRequest(t, handler, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "carbondash_http_requests_total")
}

func TestMetricsEndpoint_AbsentWithoutMetrics(t *testing.T) {
	handler := NewHandler(newFakeService())

	rr := doRequest(t, handler, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testMetrics() *metrics.Metrics {
	return &metrics.Metrics{
		IntegrationRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "integration_requests_total",
		}, []string{"integration", "outcome"}),
		IntegrationRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "integration_request_duration_seconds",
		}, []string{"integration"}),
	}
}

func TestRouteMinutes_Success(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[{"duration":"900s"}]}`))
	}))
	defer srv.Close()

	m := testMetrics()
	client := NewClient(srv.URL, "secret", 2*time.Second, m, nopLogger{})

	minutes, err := client.RouteMinutes(context.Background(),
		domain.Coordinates{Lat: 32.9, Lng: -96.7},
		domain.Coordinates{Lat: 32.8, Lng: -96.8},
	)
	require.NoError(t, err)

	assert.Equal(t, "/directions/v2:computeRoutes", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.InDelta(t, 15.0, minutes, 1e-9)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("routing", "success")))
}

func TestRouteMinutes_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[]}`))
	}))
	defer srv.Close()

	m := testMetrics()
	client := NewClient(srv.URL, "secret", 2*time.Second, m, nopLogger{})

	_, err := client.RouteMinutes(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	require.ErrorIs(t, err, ErrNoRoute)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("routing", "error")))
}

func TestRouteMinutes_ClientErrorNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	m := testMetrics()
	client := NewClient(srv.URL, "secret", 2*time.Second, m, nopLogger{})

	_, err := client.RouteMinutes(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, calls)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("routing", "error")))
}

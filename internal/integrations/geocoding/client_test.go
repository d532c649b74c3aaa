package geocoding

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

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testMetrics собирает коллекторы без регистрации в default registry,
// чтобы тесты не конфликтовали между собой
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

func TestGeocode_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":32.9119,"lng":-96.7323}}}]}`))
	}))
	defer srv.Close()

	m := testMetrics()
	client := NewClient(srv.URL+"/maps/api", "key", 2*time.Second, m, nopLogger{})

	coords, err := client.Geocode(context.Background(), "4315 Village Springs Pl, Dallas, TX")
	require.NoError(t, err)

	// База URL из конфигурации не содержит суффикса ресурса -
	// клиент добавляет его сам ровно один раз
	assert.Equal(t, "/maps/api/geocode/json", gotPath)
	assert.InDelta(t, 32.9119, coords.Lat, 1e-9)
	assert.InDelta(t, -96.7323, coords.Lng, 1e-9)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("geocoding", "success")))
	assert.Equal(t, float64(0), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("geocoding", "error")))
}

func TestGeocode_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	m := testMetrics()
	client := NewClient(srv.URL+"/maps/api", "key", 2*time.Second, m, nopLogger{})

	_, err := client.Geocode(context.Background(), "nowhere at all")
	require.ErrorIs(t, err, ErrGeocodeFailed)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("geocoding", "error")))
}

func TestGeocode_ClientErrorNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	m := testMetrics()
	client := NewClient(srv.URL+"/maps/api", "key", 2*time.Second, m, nopLogger{})

	_, err := client.Geocode(context.Background(), "some address")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, calls)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.IntegrationRequestsTotal.WithLabelValues("geocoding", "error")))
}

func TestGeocode_NilMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/maps/api", "key", 2*time.Second, nil, nopLogger{})

	coords, err := client.Geocode(context.Background(), "somewhere")
	require.NoError(t, err)
	assert.Equal(t, float64(1), coords.Lat)
}

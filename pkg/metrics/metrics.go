package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-коллекторы сервиса
type Metrics struct {
	// HTTP слой
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Внешние интеграции (календарь, геокодер, маршрутизатор)
	IntegrationRequestsTotal   *prometheus.CounterVec
	IntegrationRequestDuration *prometheus.HistogramVec

	// Кеш резолвера поездок: level = memory|persistent, result = hit|miss
	TravelCacheLookupsTotal *prometheus.CounterVec

	// Движок расчёта слотов
	SlotRequestsTotal  *prometheus.CounterVec
	SlotsReturnedTotal prometheus.Counter
	RoutingFallbacks   prometheus.Counter

	// База данных
	DBQueryDuration       *prometheus.HistogramVec
	DBPoolOpenConnections prometheus.Gauge
	DBPoolInUse           prometheus.Gauge
	DBPoolIdle            prometheus.Gauge
}

// New создает и регистрирует коллекторы метрик в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		IntegrationRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "integration_requests_total",
			Help:        "Outbound requests to external collaborators",
			ConstLabels: constLabels,
		}, []string{"integration", "outcome"}),

		IntegrationRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "integration_request_duration_seconds",
			Help:        "Outbound request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"integration"}),

		TravelCacheLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "travel_cache_lookups_total",
			Help:        "Travel resolver cache lookups by level and result",
			ConstLabels: constLabels,
		}, []string{"level", "result"}),

		SlotRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_requests_total",
			Help:        "Availability computations by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotsReturnedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slots_returned_total",
			Help:        "Total number of slots exposed to callers",
			ConstLabels: constLabels,
		}),

		RoutingFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "routing_fallbacks_total",
			Help:        "Times the default travel duration substituted a failed routing call",
			ConstLabels: constLabels,
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		DBPoolOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool",
			ConstLabels: constLabels,
		}),

		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),

		DBPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
	}
}

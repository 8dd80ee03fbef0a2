package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus metrics for the roster service.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PassengersAssignedTotal prometheus.Counter
	PassengersRemovedTotal  prometheus.Counter

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightroster_http_requests_total",
				Help: "Total HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightroster_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
		PassengersAssignedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightroster_passengers_assigned_total",
			Help: "Successful passenger-to-flight assignments",
		}),
		PassengersRemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightroster_passengers_removed_total",
			Help: "Successful passenger removals from flights",
		}),
		CacheHitsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightroster_cache_hits_total",
			Help: "Flight cache hits",
		}),
		CacheMissesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightroster_cache_misses_total",
			Help: "Flight cache misses",
		}),
	}
}

package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SearchesTotal counts tower searches by kind and final outcome
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towermap",
			Name:      "searches_total",
			Help:      "Total number of tower searches by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// SearchDuration observes wall-clock time spent in the Loading phase
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "towermap",
			Name:      "search_duration_seconds",
			Help:      "Time between issuing a search and committing its result",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"kind"},
	)

	// StaleResponses counts responses discarded because a newer search was issued
	StaleResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towermap",
			Name:      "stale_responses_total",
			Help:      "Total number of search responses discarded as superseded",
		},
		[]string{"kind"},
	)

	// GeocodeRequests counts geocoding lookups by outcome
	GeocodeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towermap",
			Name:      "geocode_requests_total",
			Help:      "Total number of geocoding lookups",
		},
		[]string{"outcome"},
	)

	// TowerOverlays tracks overlays currently on the map
	TowerOverlays = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "towermap",
			Name:      "tower_overlays",
			Help:      "Number of tower overlays currently drawn",
		},
		[]string{"kind"},
	)

	// ViewClients tracks connected websocket views
	ViewClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "towermap",
			Name:      "view_clients",
			Help:      "Number of connected websocket views",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// It is idempotent.
func InitMetrics() {
	once.Do(func() {
		// Ignore AlreadyRegistered errors so tests can call this repeatedly
		prometheus.DefaultRegisterer.Register(SearchesTotal)
		prometheus.DefaultRegisterer.Register(SearchDuration)
		prometheus.DefaultRegisterer.Register(StaleResponses)
		prometheus.DefaultRegisterer.Register(GeocodeRequests)
		prometheus.DefaultRegisterer.Register(TowerOverlays)
		prometheus.DefaultRegisterer.Register(ViewClients)
	})
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "swellcast"

// Metrics holds the Prometheus collectors for the forecast pipeline.
type Metrics struct {
	// Marine data metrics.
	ProviderRequests *prometheus.CounterVec   // labels: source, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: source
	MarineFallbacks  prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,not_found}
	GeocodeCache    *prometheus.CounterVec // labels: tier={lru,dynamo}, result={hit,miss}

	// Narrative metrics.
	NarrativeRequests *prometheus.CounterVec // labels: outcome={success,retry,failure}

	Forecasts *prometheus.CounterVec // labels: forecast_type, data_source
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marine_provider_requests_total",
			Help:      help("Marine provider calls by source and outcome."),
		}, []string{"source", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "marine_provider_duration_seconds",
			Help:      help("Marine provider call duration in seconds."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		MarineFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marine_data_unavailable_total",
			Help:      help("Requests where every marine provider failed."),
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      help("Geocoding API requests by outcome."),
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      help("Geocoding cache lookups by tier and result."),
		}, []string{"tier", "result"}),
		NarrativeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_requests_total",
			Help:      help("Text generation attempts by outcome."),
		}, []string{"outcome"}),
		Forecasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecasts_total",
			Help:      help("Forecasts served by type and answering data source."),
		}, []string{"forecast_type", "data_source"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.MarineFallbacks,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.NarrativeRequests,
		m.Forecasts,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

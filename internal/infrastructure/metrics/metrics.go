package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Import metrics
	AccountsCreated      *prometheus.CounterVec
	TransactionsImported prometheus.Counter
	ImportDuration       prometheus.Histogram

	// Report metrics
	SeriesComputed    prometheus.Counter
	SeriesCacheHits   prometheus.Counter
	SeriesCacheMisses prometheus.Counter
}

// New creates all metrics and registers them on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics on the given registerer. Tests pass a fresh
// registry to avoid duplicate registration across cases.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "findus_accounts_created_total",
			Help: "Total number of accounts created during import",
		}, []string{"type"}),
		TransactionsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "findus_transactions_imported_total",
			Help: "Total number of transactions written during import",
		}),
		ImportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "findus_import_duration_seconds",
			Help:    "Duration of full import runs",
			Buckets: prometheus.DefBuckets,
		}),
		SeriesComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "findus_series_computed_total",
			Help: "Total number of balance series computed",
		}),
		SeriesCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "findus_series_cache_hits_total",
			Help: "Balance series served from cache",
		}),
		SeriesCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "findus_series_cache_misses_total",
			Help: "Balance series recomputed after cache miss",
		}),
	}
}

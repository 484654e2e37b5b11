package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the catalog migration and the
// storefront annotation endpoints.
type Metrics struct {
	batches      *prometheus.CounterVec
	products     *prometheus.CounterVec
	warnings     prometheus.Counter
	batchLatency prometheus.Histogram
	lifecycle    *prometheus.CounterVec
	progress     *prometheus.GaugeVec
	annotations  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the collectors against the provided registerer. When the
// registerer is nil the default Prometheus registerer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

// MigrationStarted records a fresh migration over total products.
func (m *Metrics) MigrationStarted(total int) {
	if m == nil {
		return
	}
	m.lifecycle.WithLabelValues("start").Inc()
	m.progress.WithLabelValues("total").Set(float64(total))
	m.progress.WithLabelValues("offset").Set(0)
}

// ObserveBatch records one finished batch.
func (m *Metrics) ObserveBatch(processed, warnings, offset int, clamped bool, started time.Time) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case clamped:
		outcome = "clamped"
	case warnings > 0:
		outcome = "warnings"
	}
	m.batches.WithLabelValues(outcome).Inc()
	m.warnings.Add(float64(warnings))
	m.progress.WithLabelValues("offset").Set(float64(offset))
	m.batchLatency.Observe(time.Since(started).Seconds())
}

// ProductConverted counts a converted catalog entity by its product type.
func (m *Metrics) ProductConverted(kind string) {
	if m == nil {
		return
	}
	m.products.WithLabelValues(kind).Inc()
}

// MigrationEnded records a finalize or reset.
func (m *Metrics) MigrationEnded(event string) {
	if m == nil {
		return
	}
	m.lifecycle.WithLabelValues(event).Inc()
	m.progress.Reset()
}

// Annotated counts annotation requests per context and whether the fragment changed.
func (m *Metrics) Annotated(context string, changed bool) {
	if m == nil {
		return
	}
	result := "unchanged"
	if changed {
		result = "changed"
	}
	m.annotations.WithLabelValues(context, result).Inc()
}

// CacheLookup counts price cache lookups by outcome ("hit" or "miss").
func (m *Metrics) CacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	batches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dpa_migration_batches_total",
		Help: "Migration batches processed partitioned by outcome.",
	}, []string{"outcome"})
	products := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dpa_migration_products_converted_total",
		Help: "Catalog entities whose prices were converted, by product type.",
	}, []string{"type"})
	warnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dpa_migration_warnings_total",
		Help: "Per-product failures collected during migration batches.",
	})
	batchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dpa_migration_batch_duration_seconds",
		Help:    "Duration in seconds of a single migration batch.",
		Buckets: prometheus.DefBuckets,
	})
	lifecycle := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dpa_migration_events_total",
		Help: "Migration lifecycle events (start, finalize, reset).",
	}, []string{"event"})
	progress := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dpa_migration_progress",
		Help: "Persisted offset and total of the running migration.",
	}, []string{"field"})
	annotations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dpa_price_annotations_total",
		Help: "Price annotation requests by context and result.",
	}, []string{"context", "result"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dpa_price_cache_lookups_total",
		Help: "Product price cache lookups by outcome.",
	}, []string{"outcome"})
	registerer.MustRegister(batches, products, warnings, batchLatency, lifecycle, progress, annotations, cacheLookups)
	return &Metrics{
		batches:      batches,
		products:     products,
		warnings:     warnings,
		batchLatency: batchLatency,
		lifecycle:    lifecycle,
		progress:     progress,
		annotations:  annotations,
		cacheLookups: cacheLookups,
	}
}

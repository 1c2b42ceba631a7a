// Package metrics provides Prometheus metrics for the riskreg analysis
// pipeline. A batch run has no scrape endpoint, so the registry is gathered
// at the end of a run and dumped through Dump for logging.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Load metrics - dataset quality
	recordsLoaded prometheus.Counter
	rowsRejected  prometheus.Counter

	// Analysis metrics - pipeline output scale
	categoriesAggregated prometheus.Gauge
	highRiskCategories   prometheus.Gauge
	recommendations      prometheus.Counter
	runsTotal            prometheus.Counter

	// Stage performance
	stageDuration *prometheus.HistogramVec

	// Export metrics
	exportsWritten prometheus.Counter
	exportFailures prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "riskreg",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_loaded_total",
		Help:      "Total number of valid incident records loaded",
	})

	m.rowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_rejected_total",
		Help:      "Total number of malformed rows skipped during load",
	})

	m.categoriesAggregated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "categories_aggregated",
		Help:      "Number of category aggregates produced by the last run",
	})

	m.highRiskCategories = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_risk_categories",
		Help:      "Number of categories at or above the risk threshold in the last run",
	})

	m.recommendations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_total",
		Help:      "Total number of recommendations emitted",
	})

	m.runsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of completed analysis runs",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Duration of each pipeline stage in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.exportsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_written_total",
		Help:      "Total number of export tables written successfully",
	})

	m.exportFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_failures_total",
		Help:      "Total number of export tables that failed to write",
	})
}

// Dump gathers the registry and renders every metric as one line per
// sample, sorted by name, suitable for end-of-run debug logging.
func (m *Manager) Dump() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGather, err)
	}

	var lines []string
	for _, mf := range families {
		for _, sample := range mf.GetMetric() {
			var value float64
			switch {
			case sample.GetCounter() != nil:
				value = sample.GetCounter().GetValue()
			case sample.GetGauge() != nil:
				value = sample.GetGauge().GetValue()
			case sample.GetHistogram() != nil:
				value = sample.GetHistogram().GetSampleSum()
			}
			var labels []string
			for _, lp := range sample.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

// Package-level helpers operating on the global manager.

// RecordRecordsLoaded adds to the valid-record counter.
func RecordRecordsLoaded(n int) {
	if globalManager.enabled {
		globalManager.recordsLoaded.Add(float64(n))
	}
}

// RecordRowsRejected adds to the skipped-row counter.
func RecordRowsRejected(n int) {
	if globalManager.enabled {
		globalManager.rowsRejected.Add(float64(n))
	}
}

// UpdateCategoriesAggregated sets the category-aggregate gauge.
func UpdateCategoriesAggregated(n int) {
	if globalManager.enabled {
		globalManager.categoriesAggregated.Set(float64(n))
	}
}

// UpdateHighRiskCategories sets the high-risk-category gauge.
func UpdateHighRiskCategories(n int) {
	if globalManager.enabled {
		globalManager.highRiskCategories.Set(float64(n))
	}
}

// RecordRecommendations adds to the recommendation counter.
func RecordRecommendations(n int) {
	if globalManager.enabled {
		globalManager.recommendations.Add(float64(n))
	}
}

// RecordRun counts one completed analysis run.
func RecordRun() {
	if globalManager.enabled {
		globalManager.runsTotal.Inc()
	}
}

// RecordStageDuration observes one pipeline stage duration in milliseconds.
func RecordStageDuration(stage string, ms float64) {
	if globalManager.enabled {
		globalManager.stageDuration.WithLabelValues(stage).Observe(ms)
	}
}

// RecordExportWritten counts one successfully written export table.
func RecordExportWritten() {
	if globalManager.enabled {
		globalManager.exportsWritten.Inc()
	}
}

// RecordExportFailure counts one failed export table.
func RecordExportFailure() {
	if globalManager.enabled {
		globalManager.exportFailures.Inc()
	}
}

// Dump renders the global manager's registry.
func Dump() (string, error) {
	return globalManager.Dump()
}

// GetRegistry returns the global custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the draft board pipeline.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the pipeline and the board API report to.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Ingestion
	providerRows     *prometheus.CounterVec
	providerDupes    *prometheus.CounterVec
	providersLoaded  prometheus.Gauge
	adpRows          prometheus.Gauge
	adpMatched       prometheus.Gauge
	scoringOverrides prometheus.Gauge

	// Stages
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	pipelineRuns  *prometheus.CounterVec

	// Output
	playersOutput prometheus.Gauge
	tierInertia   *prometheus.GaugeVec
	tierPlayers   *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "draftboard",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat collector list
	auto := promauto.With(m.registry)

	m.providerRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "provider_rows_total",
		Help: "Projection rows ingested per provider",
	}, []string{"provider"})
	m.providerDupes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "provider_duplicate_rows_total",
		Help: "Projection rows dropped because their identity repeated inside one provider table",
	}, []string{"provider"})
	m.providersLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "providers_loaded",
		Help: "Number of provider tables in the last run",
	})
	m.adpRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "adp_rows",
		Help: "ADP rows with a numeric value in the last run",
	})
	m.adpMatched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "adp_matched_players",
		Help: "Players that received an ADP in the last run",
	})
	m.scoringOverrides = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "scoring_overrides",
		Help: "Scoring weights overridden by external configuration",
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "stage_duration_milliseconds",
		Help:    "Wall time per pipeline stage",
		Buckets: m.histogramBuckets,
	}, []string{"stage"})
	m.stageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "stage_errors_total",
		Help: "Pipeline stage failures by stage and kind",
	}, []string{"stage", "kind"})
	m.pipelineRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "runs_total",
		Help: "Pipeline runs by outcome",
	}, []string{"outcome"})

	m.playersOutput = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "players_output",
		Help: "Rows in the last assembled board",
	})
	m.tierInertia = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "tier_inertia",
		Help: "Best k-means inertia per position",
	}, []string{"position"})
	m.tierPlayers = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "tier_players",
		Help: "Players per position and tier",
	}, []string{"position", "tier"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "api", ConstLabels: m.constLabels,
		Name: "http_requests_total",
		Help: "HTTP requests served by the board API",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "api", ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request latency",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// RecordProviderRows adds ingested rows for a provider.
func RecordProviderRows(provider string, n int) {
	globalManager.providerRows.WithLabelValues(provider).Add(float64(n))
}

// RecordProviderDuplicates adds dropped duplicate rows for a provider.
func RecordProviderDuplicates(provider string, n int) {
	globalManager.providerDupes.WithLabelValues(provider).Add(float64(n))
}

// UpdateProvidersLoaded sets the provider count of the current run.
func UpdateProvidersLoaded(n int) {
	globalManager.providersLoaded.Set(float64(n))
}

// UpdateADP sets ADP row and match counts.
func UpdateADP(rows, matched int) {
	globalManager.adpRows.Set(float64(rows))
	globalManager.adpMatched.Set(float64(matched))
}

// UpdateScoringOverrides sets the number of overridden weights.
func UpdateScoringOverrides(n int) {
	globalManager.scoringOverrides.Set(float64(n))
}

// RecordStageDuration observes a stage's wall time in milliseconds.
func RecordStageDuration(stage string, ms float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(ms)
}

// RecordStageError counts a stage failure.
func RecordStageError(stage, kind string) {
	globalManager.stageErrors.WithLabelValues(stage, kind).Inc()
}

// RecordRun counts a finished pipeline run ("ok" or "error").
func RecordRun(outcome string) {
	globalManager.pipelineRuns.WithLabelValues(outcome).Inc()
}

// UpdatePlayersOutput sets the number of board rows.
func UpdatePlayersOutput(n int) {
	globalManager.playersOutput.Set(float64(n))
}

// UpdateTierInertia sets the clustering inertia for a position.
func UpdateTierInertia(position string, inertia float64) {
	globalManager.tierInertia.WithLabelValues(position).Set(inertia)
}

// UpdateTierPlayers sets the member count of a tier.
func UpdateTierPlayers(position, tier string, n int) {
	globalManager.tierPlayers.WithLabelValues(position, tier).Set(float64(n))
}

// RecordHTTPRequest records an HTTP request and its latency.
func RecordHTTPRequest(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the registry in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

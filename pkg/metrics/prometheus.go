// Package metrics provides Prometheus metrics for replay import sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels how an imported recording was placed.
type Outcome string

// Import outcomes.
const (
	OutcomeMerged   Outcome = "merged"
	OutcomeNewGame  Outcome = "new_game"
	OutcomeAttached Outcome = "attached"
)

// Manager manages all Prometheus metrics of the import pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Import pipeline
	recordingsImported  *prometheus.CounterVec
	recordingsDuplicate prometheus.Counter
	recordingsDummy     prometheus.Counter
	decodeErrors        prometheus.Counter
	malformedHeaders    prometheus.Counter
	importLatency       prometheus.Histogram

	// Session state
	games      prometheus.Gauge
	dummyGames prometheus.Gauge
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
		namespace:        "replaymerge",
		subsystem:        "session",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
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
	labels := prometheus.Labels(m.customLabels)

	m.recordingsImported = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "recordings_imported_total",
			Help:        "Total number of recordings added to a game, by outcome",
			ConstLabels: labels,
		},
		[]string{"outcome"},
	)

	m.recordingsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recordings_duplicate_total",
		Help:        "Total number of uploads skipped because the same bytes were already imported",
		ConstLabels: labels,
	})

	m.recordingsDummy = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recordings_dummy_total",
		Help:        "Total number of imported recordings that did not parse",
		ConstLabels: labels,
	})

	m.decodeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "decode_errors_total",
		Help:        "Total number of parser outputs that could not be decoded",
		ConstLabels: labels,
	})

	m.malformedHeaders = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "malformed_headers_total",
		Help:        "Total number of parsed recordings whose map could not be resolved",
		ConstLabels: labels,
	})

	m.importLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "import_latency_milliseconds",
		Help:        "Histogram of the time to place one recording in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.games = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "games",
		Help:        "Current number of games in the session",
		ConstLabels: labels,
	})

	m.dummyGames = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dummy_games",
		Help:        "Current number of games without any parsed recording",
		ConstLabels: labels,
	})
}

// RecordImported increments the imported counter for outcome.
func (m *Manager) RecordImported(outcome Outcome) {
	m.recordingsImported.WithLabelValues(string(outcome)).Inc()
}

// RecordDuplicate increments the duplicate uploads counter.
func (m *Manager) RecordDuplicate() { m.recordingsDuplicate.Inc() }

// RecordDummy increments the dummy recordings counter.
func (m *Manager) RecordDummy() { m.recordingsDummy.Inc() }

// RecordDecodeError increments the decode errors counter.
func (m *Manager) RecordDecodeError() { m.decodeErrors.Inc() }

// RecordMalformedHeader increments the malformed headers counter.
func (m *Manager) RecordMalformedHeader() { m.malformedHeaders.Inc() }

// RecordImportLatency records import latency in milliseconds.
func (m *Manager) RecordImportLatency(latencyMs float64) { m.importLatency.Observe(latencyMs) }

// UpdateGames sets the game gauges.
func (m *Manager) UpdateGames(games, dummies int) {
	m.games.Set(float64(games))
	m.dummyGames.Set(float64(dummies))
}

// Default returns the global manager registered on the custom registry.
func Default() *Manager {
	return globalManager
}

// RecordImported increments the imported counter of the global manager.
func RecordImported(outcome Outcome) {
	globalManager.RecordImported(outcome)
}

// RecordDuplicate increments the duplicate uploads counter of the global manager.
func RecordDuplicate() {
	globalManager.RecordDuplicate()
}

// RecordDecodeError increments the decode errors counter of the global manager.
func RecordDecodeError() {
	globalManager.RecordDecodeError()
}

// UpdateGames sets the game gauges of the global manager.
func UpdateGames(games, dummies int) {
	globalManager.UpdateGames(games, dummies)
}

// GetRegistry returns the custom registry holding the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the pokedex service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the pokedex service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Upstream metrics - PokeAPI traffic
	upstreamRequests       *prometheus.CounterVec
	upstreamRequestLatency prometheus.Histogram
	memoHits               prometheus.Counter
	memoMisses             prometheus.Counter
	memoSize               prometheus.Gauge

	// Ingestion metrics
	ingestionDuration prometheus.Histogram
	speciesSkipped    prometheus.Counter
	pokemonTotal      prometheus.Gauge

	// Snapshot metrics
	snapshotLoads  *prometheus.CounterVec
	snapshotWrites prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Rate limiting metrics
	rateLimitDenials prometheus.Counter
	trackedClients   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pokedex",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
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

	m.upstreamRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream PokeAPI requests by outcome",
		},
		[]string{"outcome"},
	)

	m.upstreamRequestLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_request_latency_milliseconds",
		Help:      "Upstream request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.memoHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "memo_hits_total",
		Help:      "Total number of upstream memo cache hits",
	})

	m.memoMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "memo_misses_total",
		Help:      "Total number of upstream memo cache misses",
	})

	m.memoSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "memo_size",
		Help:      "Current number of entries in the upstream memo cache",
	})

	m.ingestionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingestion_duration_seconds",
		Help:      "Full ingestion run duration in seconds",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	m.speciesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "species_skipped_total",
		Help:      "Total number of species skipped during ingestion",
	})

	m.pokemonTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pokemon_total",
		Help:      "Total number of pokemon in the served collection",
	})

	m.snapshotLoads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "snapshot_loads_total",
			Help:      "Total number of snapshot load attempts by outcome",
		},
		[]string{"outcome"},
	)

	m.snapshotWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_writes_total",
		Help:      "Total number of snapshot files written",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.rateLimitDenials = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rate_limit_denials_total",
		Help:      "Total number of requests denied by the rate limiter",
	})

	m.trackedClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rate_limit_tracked_clients",
		Help:      "Current number of clients tracked by the rate limiter",
	})
}

// Package-level helpers against the global manager.

// RecordUpstreamRequest increments the upstream request counter.
// Outcome is one of "success", "error", "retry".
func RecordUpstreamRequest(outcome string) {
	globalManager.upstreamRequests.WithLabelValues(outcome).Inc()
}

// RecordUpstreamLatency records one upstream request latency.
func RecordUpstreamLatency(latencyMs float64) {
	globalManager.upstreamRequestLatency.Observe(latencyMs)
}

// RecordMemoHit increments the memo cache hit counter.
func RecordMemoHit() {
	globalManager.memoHits.Inc()
}

// RecordMemoMiss increments the memo cache miss counter.
func RecordMemoMiss() {
	globalManager.memoMisses.Inc()
}

// UpdateMemoSize sets the current memo cache size.
func UpdateMemoSize(size int) {
	globalManager.memoSize.Set(float64(size))
}

// RecordIngestionDuration records a full ingestion run duration.
func RecordIngestionDuration(seconds float64) {
	globalManager.ingestionDuration.Observe(seconds)
}

// RecordSpeciesSkipped increments the skipped-species counter.
func RecordSpeciesSkipped() {
	globalManager.speciesSkipped.Inc()
}

// UpdatePokemonTotal sets the size of the served collection.
func UpdatePokemonTotal(count int) {
	globalManager.pokemonTotal.Set(float64(count))
}

// RecordSnapshotLoad increments the snapshot load counter.
// Outcome is one of "hit", "miss".
func RecordSnapshotLoad(outcome string) {
	globalManager.snapshotLoads.WithLabelValues(outcome).Inc()
}

// RecordSnapshotWrite increments the snapshot write counter.
func RecordSnapshotWrite() {
	globalManager.snapshotWrites.Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimitDenial increments the rate limit denial counter.
func RecordRateLimitDenial() {
	globalManager.rateLimitDenials.Inc()
}

// UpdateTrackedClients sets the number of tracked rate limit clients.
func UpdateTrackedClients(count int) {
	globalManager.trackedClients.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

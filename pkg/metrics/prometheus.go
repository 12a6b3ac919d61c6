// Package metrics provides Prometheus metrics for the meal battle service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Battle metrics
	battlesTotal      prometheus.Counter
	battleUpsets      prometheus.Counter
	battleScores      prometheus.Histogram
	battleErrors      *prometheus.CounterVec
	combatantsStaged  prometheus.Gauge
	mealsActive       prometheus.Gauge
	leaderboardReads  *prometheus.CounterVec
	leaderboardErrors prometheus.Counter

	// Randomness source metrics
	randomnessDraws   prometheus.Counter
	randomnessErrors  prometheus.Counter
	randomnessLatency prometheus.Histogram

	// Storage metrics
	storageQueries     *prometheus.CounterVec
	storageQueryErrors *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mealmax",
		subsystem:        "arena",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.battlesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "battles_total",
		Help:      "Total number of resolved battles.",
	})
	m.battleUpsets = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "battle_upsets_total",
		Help:      "Battles won by the lower-scored combatant.",
	})
	m.battleScores = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "battle_score",
		Help:      "Distribution of combatant scores at battle time.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
	m.battleErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "battle_errors_total",
		Help:      "Battle requests rejected, by error kind.",
	}, []string{"kind"})
	m.combatantsStaged = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "combatants_staged",
		Help:      "Number of meals currently staged in the roster.",
	})
	m.mealsActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "meals_active",
		Help:      "Number of non-deleted meals in the catalog.",
	})
	m.leaderboardReads = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_reads_total",
		Help:      "Leaderboard reads, by sort metric.",
	}, []string{"metric"})
	m.leaderboardErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_errors_total",
		Help:      "Failed leaderboard reads.",
	})

	m.randomnessDraws = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "randomness_draws_total",
		Help:      "Successful draws from the randomness source.",
	})
	m.randomnessErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "randomness_errors_total",
		Help:      "Failed draws from the randomness source.",
	})
	m.randomnessLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "randomness_latency_ms",
		Help:      "Randomness draw latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.storageQueries = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_queries_total",
		Help:      "Meal store operations, by operation name.",
	}, []string{"op"})
	m.storageQueryErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_query_errors_total",
		Help:      "Failed meal store operations, by operation name.",
	}, []string{"op"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines.",
	})
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level record helpers delegating to the global manager.

// RecordBattle records a resolved battle; upset marks a win by the
// lower-scored combatant.
func RecordBattle(upset bool) {
	if !globalManager.enabled {
		return
	}
	globalManager.battlesTotal.Inc()
	if upset {
		globalManager.battleUpsets.Inc()
	}
}

// ObserveBattleScore records one combatant's score at battle time.
func ObserveBattleScore(score float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.battleScores.Observe(score)
}

// RecordBattleError records a rejected battle request by error kind.
func RecordBattleError(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.battleErrors.WithLabelValues(kind).Inc()
}

// UpdateCombatantsStaged sets the current roster occupancy.
func UpdateCombatantsStaged(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.combatantsStaged.Set(float64(n))
}

// UpdateMealsActive sets the number of non-deleted catalog meals.
func UpdateMealsActive(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.mealsActive.Set(float64(n))
}

// RecordLeaderboardRead records a leaderboard read by sort metric.
func RecordLeaderboardRead(metric string) {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardReads.WithLabelValues(metric).Inc()
}

// RecordLeaderboardError records a failed leaderboard read.
func RecordLeaderboardError() {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardErrors.Inc()
}

// RecordRandomnessDraw records a successful draw and its latency.
func RecordRandomnessDraw(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.randomnessDraws.Inc()
	globalManager.randomnessLatency.Observe(latencyMs)
}

// RecordRandomnessError records a failed draw.
func RecordRandomnessError() {
	if !globalManager.enabled {
		return
	}
	globalManager.randomnessErrors.Inc()
}

// RecordStorageQuery records a meal store operation.
func RecordStorageQuery(op string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storageQueries.WithLabelValues(op).Inc()
}

// RecordStorageError records a failed meal store operation.
func RecordStorageError(op string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storageQueryErrors.WithLabelValues(op).Inc()
}

// RecordHTTPRequest records an HTTP request outcome.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the allocated heap bytes gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(n))
}

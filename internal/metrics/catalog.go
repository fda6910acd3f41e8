package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "motoparts"

// Catalog, cache and store Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Catalog searches by outcome",
		},
		[]string{"status"}, // ok / store_unavailable / ranking_degraded
	)

	RankingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Fuzzy ranking duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RankingCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_candidates",
			Help:      "Number of candidate parts scored per search",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
		},
	)

	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Result cache reads by backend and result",
		},
		[]string{"backend", "result"}, // "redis"/"memory", "hit"/"miss"/"error"
	)

	CacheBackendUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_backend_up",
			Help:      "Whether the result cache backend answered its last probe",
		},
		[]string{"backend"},
	)

	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_memory_entries",
			Help:      "Entries resident in the in-process fallback cache",
		},
	)

	StoreBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_breaker_state",
			Help:      "Catalog store circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	PartCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "part_cache_total",
			Help:      "Part-by-id L1 cache hits and misses",
		},
		[]string{"result"},
	)

	OrdersPlacedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders placed",
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog Prometheus metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingCandidates)
	prometheus.MustRegister(CacheRequestsTotal)
	prometheus.MustRegister(CacheBackendUp)
	prometheus.MustRegister(CacheEntries)
	prometheus.MustRegister(StoreBreakerState)
	prometheus.MustRegister(PartCacheTotal)
	prometheus.MustRegister(OrdersPlacedTotal)
	catalogMetricsRegistered = true
}

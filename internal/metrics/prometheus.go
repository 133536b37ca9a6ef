package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScoringRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocv_scoring_requests_total",
			Help: "Total number of resume scoring requests",
		},
		[]string{"status"},
	)

	ScoringDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autocv_scoring_duration_seconds",
			Help:    "Resume scoring duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"format"},
	)

	OverallScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "autocv_overall_score",
			Help:    "Distribution of overall resume scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	EmbeddingFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "autocv_embedding_failures_total",
			Help: "Total embedding calls that failed or were unavailable",
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocv_cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocv_cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)

	ReportsIndexed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocv_reports_indexed_total",
			Help: "Total reports written to the similarity index",
		},
		[]string{"status"},
	)
)

var initOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(ScoringRequests)
		prometheus.MustRegister(ScoringDuration)
		prometheus.MustRegister(OverallScore)
		prometheus.MustRegister(EmbeddingFailures)
		prometheus.MustRegister(CacheHits)
		prometheus.MustRegister(CacheMisses)
		prometheus.MustRegister(ReportsIndexed)
	})
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

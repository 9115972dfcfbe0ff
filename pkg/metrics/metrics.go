package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordlens_system_memory_bytes",
		Help: "Current heap memory in use",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordlens_system_goroutines",
		Help: "Number of goroutines",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordlens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordlens_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Pipeline metrics
	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordlens_extraction_duration_seconds",
			Help:    "Time spent extracting text from PDFs",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"engine"},
	)

	ExtractionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordlens_extraction_failures_total",
			Help: "Documents that could not be opened",
		},
		[]string{"engine"},
	)

	FailedPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordlens_extraction_failed_pages_total",
			Help: "Pages that yielded no text because extraction failed",
		},
		[]string{"engine"},
	)

	AnalysisOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordlens_analysis_outcomes_total",
			Help: "Pipeline runs by outcome",
		},
		[]string{"outcome"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordlens_render_duration_seconds",
			Help:    "Time spent rendering visualizations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	RenderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordlens_render_errors_total",
			Help: "Visualization render failures",
		},
		[]string{"kind"},
	)
)

// Analysis outcome labels
const (
	OutcomeRendered        = "rendered"
	OutcomeCounted         = "counted"
	OutcomeExtractionError = "extraction_error"
	OutcomeNoText          = "no_text"
	OutcomeNoWords         = "no_words"
)

// UpdateSystemMetrics updates system-level metrics
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}

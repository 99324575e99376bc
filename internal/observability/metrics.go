package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms of the forecast
// engine.
type Metrics struct {
	DaysProcessed    prometheus.Counter
	WindowsProcessed prometheus.Counter
	WindowsSkipped   *prometheus.CounterVec // label: reason={missing_field,empty_sample}
	RowsWritten      prometheus.Counter
	ReportsGenerated prometheus.Counter
	ChatAttempts     *prometheus.CounterVec // label: outcome={success,error}

	BuildDuration prometheus.Histogram
	ChatDuration  prometheus.Histogram
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DaysProcessed,
		m.WindowsProcessed,
		m.WindowsSkipped,
		m.RowsWritten,
		m.ReportsGenerated,
		m.ChatAttempts,
		m.BuildDuration,
		m.ChatDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DaysProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_engine",
			Name:      "days_processed_total",
			Help:      "Forecast days built.",
		}),
		WindowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_engine",
			Name:      "windows_processed_total",
			Help:      "Forecast windows reduced to table rows.",
		}),
		WindowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_engine",
			Name:      "windows_skipped_total",
			Help:      "Forecast windows dropped from the table, by reason.",
		}, []string{"reason"}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_engine",
			Name:      "rows_written_total",
			Help:      "Table rows persisted to CSV.",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_engine",
			Name:      "reports_generated_total",
			Help:      "Natural-language reports completed.",
		}),
		ChatAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_engine",
			Name:      "chat_attempts_total",
			Help:      "Chat completion attempts by outcome.",
		}, []string{"outcome"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_engine",
			Name:      "build_duration_seconds",
			Help:      "Duration of one forecast-day build.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		ChatDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_engine",
			Name:      "chat_duration_seconds",
			Help:      "Duration of one chat completion round trip.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

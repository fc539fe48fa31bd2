package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels of the files counter.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Metrics are the batch counters updated by Runner.Run.
type Metrics struct {
	Files    *prometheus.CounterVec
	Duration prometheus.Histogram
	Pixels   prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shotframe",
			Name:      "files_total",
			Help:      "Files handled by the pipeline runner, by result.",
		}, []string{"result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shotframe",
			Name:      "file_duration_seconds",
			Help:      "Time spent loading, processing and saving one file.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		Pixels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shotframe",
			Name:      "output_pixels_total",
			Help:      "Pixels written to output files.",
		}),
	}
	reg.MustRegister(m.Files, m.Duration, m.Pixels)
	return m
}

func (m *Metrics) observe(result string, seconds float64) {
	if m == nil {
		return
	}
	m.Files.WithLabelValues(result).Inc()
	if result != ResultSkipped {
		m.Duration.Observe(seconds)
	}
}

func (m *Metrics) addPixels(n int) {
	if m == nil {
		return
	}
	m.Pixels.Add(float64(n))
}

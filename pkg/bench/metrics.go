package bench

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	calls    *prometheus.CounterVec
}

// newMetrics registers on a private registry so repeated runs in one process
// never collide. Every series carries the run id as a constant label.
func newMetrics(runID string) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "trendgraph",
				Subsystem: "bench",
				Name:      "operation_duration_seconds",
				Help:      "Execution time of analytics operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
			},
			[]string{"operation"},
		),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trendgraph",
				Subsystem: "bench",
				Name:      "operation_calls_total",
				Help:      "Number of timed analytics operation calls",
			},
			[]string{"operation"},
		),
	}
	prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, m.registry).
		MustRegister(m.duration, m.calls)
	return m
}

func (m *metrics) observe(operation string, seconds float64) {
	m.duration.WithLabelValues(operation).Observe(seconds)
	m.calls.WithLabelValues(operation).Inc()
}

func (m *metrics) writeTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

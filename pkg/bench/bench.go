// Package bench times the analytics catalogue over repeated runs and writes
// the per-operation mean execution times.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
)

// DefaultIterations is the number of passes over the catalogue.
const DefaultIterations = 10

// Config holds the configuration for a benchmark run
type Config struct {
	Analyzer   *analytics.Analyzer
	Operations []analytics.Operation
	Args       analytics.Args
	Iterations int
	// Rate caps operation invocations per second; 0 runs unpaced.
	Rate   float64
	Logger *logrus.Logger
	// Progress, when set, receives a line per iteration and operation.
	Progress func(format string, args ...any)
}

// Sample is one timed operation call, in seconds.
type Sample struct {
	Operation     string  `json:"operation"`
	ExecutionTime float64 `json:"executionTime"`
}

// Report is the outcome of one benchmark run.
type Report struct {
	RunID   uuid.UUID
	Samples []Sample
	// Means holds one row per operation in first-seen order.
	Means   []Sample
	metrics *metrics
}

// Runner executes benchmark runs.
type Runner struct {
	config  Config
	limiter *rate.Limiter
	logger  *logrus.Logger
}

func NewRunner(config Config) (*Runner, error) {
	if config.Analyzer == nil {
		return nil, fmt.Errorf("bench: analyzer is required")
	}
	if config.Iterations <= 0 {
		config.Iterations = DefaultIterations
	}
	if config.Operations == nil {
		config.Operations = analytics.Catalog()
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	limit := rate.Inf
	if config.Rate > 0 {
		limit = rate.Limit(config.Rate)
	}

	return &Runner{
		config:  config,
		limiter: rate.NewLimiter(limit, 1),
		logger:  config.Logger,
	}, nil
}

// Run calls every operation Iterations times, in order, timing each call.
// Any operation error aborts the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := uuid.New()
	report := &Report{
		RunID:   runID,
		Samples: make([]Sample, 0, r.config.Iterations*len(r.config.Operations)),
		metrics: newMetrics(runID.String()),
	}

	log := r.logger.WithFields(logrus.Fields{
		"method": "Run",
		"run_id": report.RunID.String(),
	})
	log.WithFields(logrus.Fields{
		"iterations": r.config.Iterations,
		"operations": len(r.config.Operations),
	}).Info("Starting benchmark run")

	for n := 0; n < r.config.Iterations; n++ {
		r.progress("%s\n", color.New(color.Bold).Sprintf("Test %d", n+1))

		for _, op := range r.config.Operations {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter wait failed: %w", err)
			}
			r.progress("%s\n", op.Name)

			start := time.Now()
			if _, err := op.Execute(ctx, r.config.Analyzer, r.config.Args); err != nil {
				return nil, fmt.Errorf("iteration %d, %s: %w", n+1, op.Name, err)
			}
			elapsed := time.Since(start).Seconds()

			report.Samples = append(report.Samples, Sample{Operation: op.Name, ExecutionTime: elapsed})
			report.metrics.observe(op.Name, elapsed)
		}
	}

	report.Means = Means(report.Samples)

	log.WithField("samples", len(report.Samples)).Info("Benchmark run completed")
	return report, nil
}

func (r *Runner) progress(format string, args ...any) {
	if r.config.Progress != nil {
		r.config.Progress(format, args...)
	}
}

// Means averages samples per operation, keeping the order in which each
// operation first appears.
func Means(samples []Sample) []Sample {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, s := range samples {
		if _, seen := counts[s.Operation]; !seen {
			order = append(order, s.Operation)
		}
		sums[s.Operation] += s.ExecutionTime
		counts[s.Operation]++
	}

	means := make([]Sample, len(order))
	for i, op := range order {
		means[i] = Sample{Operation: op, ExecutionTime: sums[op] / float64(counts[op])}
	}
	return means
}

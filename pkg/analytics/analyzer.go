// Package analytics computes the descriptive statistics over a trend graph:
// sentiment averages and breakdowns, reach, user coherence, engagement and
// discussion detection. Every operation is read-only and safe to run
// concurrently against the same store.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds RunAll when no limit is given.
const DefaultConcurrency = 4

// Analyzer runs the aggregation queries against a graph store.
type Analyzer struct {
	store  graph.Store
	logger *logrus.Logger
}

// Config holds the configuration for the Analyzer
type Config struct {
	Store  graph.Store
	Logger *logrus.Logger
}

// New creates an Analyzer. A store is required.
func New(config Config) (*Analyzer, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("analytics: store is required")
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &Analyzer{
		store:  config.Store,
		logger: config.Logger,
	}, nil
}

// Result is the outcome of one operation run.
type Result struct {
	Operation Operation
	Records   []Record
	Elapsed   time.Duration
}

// RunAll executes the given operations concurrently, at most concurrency at a
// time, and returns their results in the order the operations were given.
// The first failure cancels the remaining operations.
func (a *Analyzer) RunAll(ctx context.Context, ops []Operation, args Args, concurrency int) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(ops))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			start := time.Now()
			records, err := op.Execute(gctx, a, args)
			if err != nil {
				return fmt.Errorf("%s: %w", op.Name, err)
			}
			results[i] = Result{Operation: op, Records: records, Elapsed: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"operations":  len(ops),
		"concurrency": concurrency,
	}).Debug("Completed operation batch")

	return results, nil
}

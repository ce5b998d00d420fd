package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
)

// Requirement names the entity argument an operation needs.
type Requirement string

const (
	RequiresNone  Requirement = "none"
	RequiresTrend Requirement = "trend"
	RequiresUser  Requirement = "user"
)

// Args carries the optional entity arguments of an operation run.
type Args struct {
	Trend *graph.Trend
	User  *graph.User
}

// Operation is a named, runnable aggregation query.
type Operation struct {
	Slug     string
	Name     string
	Requires Requirement
	run      func(ctx context.Context, a *Analyzer, args Args) ([]Record, error)
}

// Execute checks the operation's entity argument is present and runs it.
func (op Operation) Execute(ctx context.Context, a *Analyzer, args Args) ([]Record, error) {
	switch op.Requires {
	case RequiresTrend:
		if args.Trend == nil {
			return nil, graph.MissingEntity("trend", "argument of "+op.Slug)
		}
	case RequiresUser:
		if args.User == nil {
			return nil, graph.MissingEntity("user", "argument of "+op.Slug)
		}
	}
	return op.run(ctx, a, args)
}

var catalog = []Operation{
	{
		Slug:     "avg-sentiment",
		Name:     "AVERAGE SENTIMENT PER TREND",
		Requires: RequiresNone,
		run: func(ctx context.Context, a *Analyzer, _ Args) ([]Record, error) {
			rows, err := a.AverageSentimentPerTrend(ctx)
			return toRecords(rows), err
		},
	},
	{
		Slug:     "sentiment-pct",
		Name:     "SENTIMENT PERCENTAGES",
		Requires: RequiresNone,
		run: func(ctx context.Context, a *Analyzer, _ Args) ([]Record, error) {
			rows, err := a.SentimentPercentages(ctx)
			return toRecords(rows), err
		},
	},
	{
		Slug:     "diffusion",
		Name:     "TREND DIFFUSION DEGREE",
		Requires: RequiresTrend,
		run: func(ctx context.Context, a *Analyzer, args Args) ([]Record, error) {
			rows, err := a.TrendDiffusionDegree(ctx, args.Trend)
			return toRecords(rows), err
		},
	},
	{
		Slug:     "coherence",
		Name:     "USER COHERENCE SCORE",
		Requires: RequiresNone,
		run: func(ctx context.Context, a *Analyzer, _ Args) ([]Record, error) {
			rows, err := a.UserCoherenceScores(ctx)
			return toRecords(rows), err
		},
	},
	{
		Slug:     "user-sentiment",
		Name:     "USER'S SENTIMENT PERCENTAGES",
		Requires: RequiresUser,
		run: func(ctx context.Context, a *Analyzer, args Args) ([]Record, error) {
			rows, err := a.UserSentimentPercentages(ctx, args.User)
			return toRecords(rows), err
		},
	},
	{
		Slug:     "engagement",
		Name:     "ENGAGEMENT METRICS COMPUTATION",
		Requires: RequiresNone,
		run: func(ctx context.Context, a *Analyzer, _ Args) ([]Record, error) {
			rows, err := a.EngagementMetrics(ctx)
			return toRecords(rows), err
		},
	},
	{
		Slug:     "discussions",
		Name:     "DISCUSSIONS' DETECTION",
		Requires: RequiresTrend,
		run: func(ctx context.Context, a *Analyzer, args Args) ([]Record, error) {
			rows, err := a.DetectDiscussions(ctx, args.Trend)
			return toRecords(rows), err
		},
	},
}

// Catalog returns every operation in its canonical order.
func Catalog() []Operation {
	ops := make([]Operation, len(catalog))
	copy(ops, catalog)
	return ops
}

// Select returns the operations named by slug, in catalogue order. No slugs
// selects everything.
func Select(slugs ...string) ([]Operation, error) {
	if len(slugs) == 0 {
		return Catalog(), nil
	}

	wanted := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		wanted[strings.ToLower(s)] = true
	}

	var ops []Operation
	for _, op := range catalog {
		if wanted[op.Slug] {
			ops = append(ops, op)
			delete(wanted, op.Slug)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for s := range wanted {
			unknown = append(unknown, s)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown operation(s): %s", strings.Join(unknown, ", "))
	}
	return ops, nil
}

// Needs reports which entity arguments the given operations require.
func Needs(ops []Operation) (trend, user bool) {
	for _, op := range ops {
		switch op.Requires {
		case RequiresTrend:
			trend = true
		case RequiresUser:
			user = true
		}
	}
	return trend, user
}

package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/bench"
)

type benchOptions struct {
	entities   entityFlags
	iterations int
	output     string
	rate       float64
}

func newBenchCommand(a *app) *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every operation and write the mean execution times as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBench(cmd, opts)
		},
	}

	flags := cmd.Flags()
	addEntityFlags(cmd, &opts.entities)
	flags.IntVarP(&opts.iterations, "iterations", "n", 0, "passes over the catalogue (default $BENCH_ITERATIONS or 10)")
	flags.StringVar(&opts.output, "output", "", "CSV path (default $BENCH_OUTPUT)")
	flags.Float64Var(&opts.rate, "rate", -1, "max operation calls per second, 0 for unpaced (default $BENCH_RATE)")
	return cmd
}

func (a *app) runBench(cmd *cobra.Command, opts *benchOptions) error {
	ctx := cmd.Context()

	iterations := a.cfg.Bench.Iterations
	if opts.iterations > 0 {
		iterations = opts.iterations
	}
	output := a.cfg.Bench.Output
	if opts.output != "" {
		output = opts.output
	}
	rate := a.cfg.Bench.Rate
	if opts.rate >= 0 {
		rate = opts.rate
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.WithoutCancel(ctx))

	ops := analytics.Catalog()
	args, err := a.resolveArgs(ctx, store, ops, opts.entities)
	if err != nil {
		return err
	}

	analyzer, err := analytics.New(analytics.Config{Store: store, Logger: a.logger})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	runner, err := bench.NewRunner(bench.Config{
		Analyzer:   analyzer,
		Operations: ops,
		Args:       args,
		Iterations: iterations,
		Rate:       rate,
		Logger:     a.logger,
		Progress: func(format string, args ...any) {
			fmt.Fprintf(out, format, args...)
		},
	})
	if err != nil {
		return err
	}

	rpt, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := rpt.WriteCSV(output); err != nil {
		return err
	}
	metricsPath := bench.MetricsPath(output)
	if err := rpt.WriteMetrics(metricsPath); err != nil {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"run_id":  rpt.RunID.String(),
		"output":  output,
		"metrics": metricsPath,
	}).Info("Benchmark results written")
	return nil
}

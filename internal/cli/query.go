package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/logging"
	"github.com/lisanmuaddib/trendgraph/pkg/report"
)

type queryOptions struct {
	entities entityFlags
	format   string
	publish  bool
}

func newQueryCommand(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [operation...]",
		Short: "Run aggregation queries and print their results",
		Long: `Run the selected operations (all of them when none is named) and print
each result under the operation's name.

Operations:
  avg-sentiment    AVERAGE SENTIMENT PER TREND
  sentiment-pct    SENTIMENT PERCENTAGES
  diffusion        TREND DIFFUSION DEGREE          (needs a trend)
  coherence        USER COHERENCE SCORE
  user-sentiment   USER'S SENTIMENT PERCENTAGES    (needs a user)
  engagement       ENGAGEMENT METRICS COMPUTATION
  discussions      DISCUSSIONS' DETECTION          (needs a trend)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	addEntityFlags(cmd, &opts.entities)
	flags.StringVarP(&opts.format, "format", "o", string(report.FormatJSON), "output format: json, yaml or table")
	flags.BoolVar(&opts.publish, "publish", false, "also publish the results to NATS")
	return cmd
}

func addEntityFlags(cmd *cobra.Command, e *entityFlags) {
	flags := cmd.Flags()
	flags.StringVar(&e.trendName, "trend-name", defaultTrendName, "name of the trend argument")
	flags.StringVar(&e.trendLocation, "trend-location", defaultTrendLocation, "location of the trend argument")
	flags.StringVar(&e.trendDate, "trend-date", defaultTrendDate, "date of the trend argument")
	flags.StringVar(&e.username, "username", defaultUsername, "username of the user argument")
}

func (a *app) runQuery(cmd *cobra.Command, slugs []string, opts *queryOptions) error {
	ctx := cmd.Context()
	log := a.logger.WithField("method", "runQuery")

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	ops, err := analytics.Select(slugs...)
	if err != nil {
		return err
	}
	if opts.publish && a.cfg.NATS.URL == "" {
		return fmt.Errorf("--publish needs NATS_URL")
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.WithoutCancel(ctx))

	args, err := a.resolveArgs(ctx, store, ops, opts.entities)
	if err != nil {
		return err
	}

	analyzer, err := analytics.New(analytics.Config{Store: store, Logger: a.logger})
	if err != nil {
		return err
	}

	results, err := analyzer.RunAll(ctx, ops, args, a.cfg.QueryConcurrency)
	if err != nil {
		return err
	}
	for _, r := range results {
		log.WithFields(logrus.Fields{
			"operation": r.Operation.Name,
			"records":   len(r.Records),
			"elapsed":   r.Elapsed.String(),
		}).Debug("Operation completed")
	}

	sections := report.FromResults(results)
	out := cmd.OutOrStdout()
	if err := report.NewRenderer(out, format, logging.IsTerminal(out)).Render(sections); err != nil {
		return err
	}

	if opts.publish {
		return a.publish(ctx, sections)
	}
	return nil
}

func (a *app) publish(ctx context.Context, sections []report.Section) error {
	nc, err := report.Connect(a.cfg.NATS.URL, a.logger)
	if err != nil {
		return err
	}
	defer nc.Close()

	publisher := report.NewPublisher(nc, a.cfg.NATS.Subject, a.logger)
	runID, err := publisher.Publish(ctx, sections)
	if err != nil {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"subject": a.cfg.NATS.Subject,
	}).Info("Published query results")
	return nil
}

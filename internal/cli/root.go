// Package cli wires the trendgraph commands.
package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/trendgraph/internal/appconfig"
	"github.com/lisanmuaddib/trendgraph/pkg/logging"
)

type app struct {
	envFile   string
	backend   string
	logLevel  string
	logFormat string

	cfg    *appconfig.Config
	logger *logrus.Logger
}

// NewRootCommand builds the trendgraph command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "trendgraph",
		Short: "Descriptive analytics over a trend/tweet/user graph",
		Long: `trendgraph runs aggregation queries over a graph of Twitter trends, tweets
and users stored in Neo4j, Postgres or an in-memory snapshot.

Example usage:
  trendgraph query                          # run every operation
  trendgraph query diffusion discussions    # run a selection
  trendgraph query --format table coherence
  trendgraph bench --iterations 20          # time the catalogue
  trendgraph --backend postgres migrate     # apply the relational schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&a.backend, "backend", "", "graph store: neo4j, postgres or memory (default $GRAPH_BACKEND or neo4j)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: color, json or text (default $LOG_FORMAT or color)")

	root.AddCommand(
		newQueryCommand(a),
		newBenchCommand(a),
		newMigrateCommand(a),
		newSeedCommand(a),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := appconfig.Load(a.envFile,
		appconfig.WithBackend(a.backend),
		appconfig.WithLogging(a.logLevel, a.logFormat),
	)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	a.logger.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"command": cmd.Name(),
	}).Debug("Configuration loaded")
	return nil
}

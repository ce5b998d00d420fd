package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lisanmuaddib/trendgraph/internal/appconfig"
	"github.com/lisanmuaddib/trendgraph/pkg/db"
	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
	"github.com/lisanmuaddib/trendgraph/pkg/graphdb"
)

func newSeedCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [snapshot.json]",
		Short: "Load a graph snapshot into the Neo4j or Postgres backend",
		Long: `Load a JSON graph snapshot (default $GRAPH_SNAPSHOT) into the configured
backend. The snapshot is checked for dangling references before anything is
written, and loading the same snapshot twice leaves the store unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.SnapshotPath
			if len(args) == 1 {
				path = args[0]
			}
			return a.runSeed(cmd.Context(), path)
		},
	}
	return cmd
}

func (a *app) runSeed(ctx context.Context, path string) error {
	snap, err := memgraph.ReadSnapshotFile(path)
	if err != nil {
		return err
	}
	// building the in-memory graph rejects dangling references up front
	if _, err := memgraph.FromSnapshot(snap, a.logger); err != nil {
		return fmt.Errorf("invalid snapshot %s: %w", path, err)
	}

	switch a.cfg.Backend {
	case appconfig.BackendNeo4j:
		store, err := graphdb.NewStore(ctx, a.cfg.Neo4j, a.logger)
		if err != nil {
			return err
		}
		defer store.Close(context.WithoutCancel(ctx))
		return store.ImportSnapshot(ctx, snap)

	case appconfig.BackendPostgres:
		gormDB, err := db.SetupDatabase(ctx, a.logger, a.cfg.Postgres, true)
		if err != nil {
			return err
		}
		defer db.NewGraphStore(a.logger, gormDB).Close(context.WithoutCancel(ctx))
		return db.ImportSnapshot(ctx, a.logger, gormDB, snap)
	}
	return fmt.Errorf("seed needs the neo4j or postgres backend, have %s", a.cfg.Backend)
}

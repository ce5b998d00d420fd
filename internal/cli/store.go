package cli

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/internal/appconfig"
	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/db"
	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
	"github.com/lisanmuaddib/trendgraph/pkg/graphdb"
)

// openStore connects to the configured backend.
func (a *app) openStore(ctx context.Context) (graph.Store, error) {
	switch a.cfg.Backend {
	case appconfig.BackendNeo4j:
		return graphdb.NewStore(ctx, a.cfg.Neo4j, a.logger)
	case appconfig.BackendPostgres:
		gormDB, err := db.SetupDatabase(ctx, a.logger, a.cfg.Postgres, false)
		if err != nil {
			return nil, err
		}
		return db.NewGraphStore(a.logger, gormDB), nil
	case appconfig.BackendMemory:
		return memgraph.LoadSnapshot(a.cfg.SnapshotPath, a.logger)
	}
	return nil, fmt.Errorf("unknown graph backend %q", a.cfg.Backend)
}

// entityFlags are the lookup keys of the trend and user arguments.
type entityFlags struct {
	trendName     string
	trendLocation string
	trendDate     string
	username      string
}

const (
	defaultTrendName     = "#Halloween"
	defaultTrendLocation = "Italy"
	defaultTrendDate     = "2023-11-01T16:29:31.292726"
	defaultUsername      = "@Ex_puppypaws"
)

// resolveArgs looks up only the entities the operations need, so a missing
// trend or user fails before any operation runs.
func (a *app) resolveArgs(ctx context.Context, store graph.Store, ops []analytics.Operation, e entityFlags) (analytics.Args, error) {
	var args analytics.Args
	needTrend, needUser := analytics.Needs(ops)

	if needTrend {
		trend, err := store.TrendByKey(ctx, graph.TrendKey{
			Name:     e.trendName,
			Location: e.trendLocation,
			Date:     e.trendDate,
		})
		if err != nil {
			return args, err
		}
		args.Trend = trend
	}
	if needUser {
		user, err := store.UserByUsername(ctx, e.username)
		if err != nil {
			return args, err
		}
		args.User = user
	}
	return args, nil
}

// Package db stores the trend graph in Postgres: nodes as tables, POSTED_BY
// and RELATED_TO as foreign keys, COMMENTED_ON as an edge table. It provides
// the connection setup, migrations and a graph.Store over gorm.
package db

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
)

// SetupDatabase opens the gorm connection, optionally applying migrations first.
func SetupDatabase(ctx context.Context, logger *logrus.Logger, cfg Config, migrate bool) (*gorm.DB, error) {
	logger.Debug("Starting database setup")

	if migrate {
		if err := RunMigrations(logger, cfg); err != nil {
			return nil, err
		}
	}

	logger.Debug("Establishing GORM database connection")

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: NewGormLogrusLogger(logger),
	})
	if err != nil {
		return nil, graph.StoreUnavailable("failed to connect to database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, graph.StoreUnavailable("failed to ping database", err)
	}

	logger.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"database": cfg.Name,
	}).Info("Database setup completed successfully")
	return db, nil
}

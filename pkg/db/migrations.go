package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
)

// RunMigrations applies every pending migration in cfg's migrations directory.
func RunMigrations(logger *logrus.Logger, cfg Config) error {
	m, closeFn, err := newMigrator(logger, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Database migrations applied")

	return nil
}

// MigrationStatus returns the current migration version and dirty state
func MigrationStatus(logger *logrus.Logger, cfg Config) (uint, bool, error) {
	logger.Debug("Checking migration status")

	m, closeFn, err := newMigrator(logger, cfg)
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	version, dirty, err := m.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Debug("Migration status retrieved")

	return version, dirty, nil
}

func newMigrator(logger *logrus.Logger, cfg Config) (*migrate.Migrate, func(), error) {
	dir, err := cfg.migrationsDir()
	if err != nil {
		return nil, nil, err
	}
	migrationsPath := "file://" + dir

	logger.WithFields(logrus.Fields{
		"migrations_path": migrationsPath,
		"host":            cfg.Host,
		"database":        cfg.Name,
	}).Debug("Preparing database migrator")

	sqlDB, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		logPQError(logger, err)
		return nil, nil, graph.StoreUnavailable("postgres unreachable", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{DatabaseName: cfg.Name})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, cfg.Name, driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, func() { m.Close() }, nil
}

// logPQError surfaces the server's SQLSTATE when the failure came from Postgres
// rather than the network.
func logPQError(logger *logrus.Logger, err error) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return
	}
	logger.WithFields(logrus.Fields{
		"pg_code":  string(pqErr.Code),
		"pg_class": pqErr.Code.Class().Name(),
		"severity": pqErr.Severity,
	}).WithError(err).Error("Postgres rejected the connection")
}

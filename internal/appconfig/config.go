// Package appconfig assembles the runtime configuration of the trendgraph
// command from an optional .env file and the environment.
package appconfig

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lisanmuaddib/trendgraph/pkg/bench"
	"github.com/lisanmuaddib/trendgraph/pkg/db"
	"github.com/lisanmuaddib/trendgraph/pkg/graphdb"
	"github.com/lisanmuaddib/trendgraph/pkg/report"
)

// Backend names a graph store implementation.
type Backend string

const (
	BackendNeo4j    Backend = "neo4j"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

const DefaultSnapshotPath = "data/graph.json"

type BenchConfig struct {
	Iterations int
	Output     string
	// Rate is operation calls per second; 0 is unpaced.
	Rate float64
}

type NATSConfig struct {
	URL     string
	Subject string
}

type Config struct {
	Backend  Backend
	Neo4j    graphdb.Config
	Postgres db.Config
	// SnapshotPath is the JSON graph loaded by the memory backend.
	SnapshotPath string

	LogLevel  string
	LogFormat string

	Bench            BenchConfig
	NATS             NATSConfig
	QueryConcurrency int
}

// Option overrides a setting after the environment is read and before the
// configuration is validated.
type Option func(*Config)

// WithBackend selects the graph backend; empty keeps the environment's.
func WithBackend(backend string) Option {
	return func(c *Config) {
		if backend != "" {
			c.Backend = Backend(backend)
		}
	}
}

// WithLogging overrides the log level and format; empty values are ignored.
func WithLogging(level, format string) Option {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
		if format != "" {
			c.LogFormat = format
		}
	}
}

// Load reads envFile when it exists, then the environment. An empty envFile
// means ".env".
func Load(envFile string, opts ...Option) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}
	return FromEnv(opts...)
}

// FromEnv builds the configuration from environment variables and defaults.
func FromEnv(opts ...Option) (*Config, error) {
	iterations, err := intFromEnv("BENCH_ITERATIONS", bench.DefaultIterations)
	if err != nil {
		return nil, err
	}
	rate, err := floatFromEnv("BENCH_RATE", 0)
	if err != nil {
		return nil, err
	}
	concurrency, err := intFromEnv("QUERY_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Backend:      Backend(getEnvOrDefault("GRAPH_BACKEND", string(BackendNeo4j))),
		Neo4j:        graphdb.NewConfigFromEnv(),
		Postgres:     db.NewConfigFromEnv(),
		SnapshotPath: getEnvOrDefault("GRAPH_SNAPSHOT", DefaultSnapshotPath),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "color"),

		Bench: BenchConfig{
			Iterations: iterations,
			Output:     getEnvOrDefault("BENCH_OUTPUT", bench.DefaultOutput),
			Rate:       rate,
		},
		NATS: NATSConfig{
			URL:     os.Getenv("NATS_URL"),
			Subject: getEnvOrDefault("NATS_SUBJECT", report.DefaultSubject),
		},
		QueryConcurrency: concurrency,
	}
	for _, opt := range opts {
		opt(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNeo4j:
		if err := c.Neo4j.Validate(); err != nil {
			return err
		}
	case BackendPostgres:
		if c.Postgres.Host == "" || c.Postgres.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres backend")
		}
	case BackendMemory:
		if c.SnapshotPath == "" {
			return fmt.Errorf("GRAPH_SNAPSHOT is required for the memory backend")
		}
	default:
		return fmt.Errorf("unknown graph backend %q (want neo4j, postgres or memory)", c.Backend)
	}

	if c.Bench.Iterations < 1 {
		return fmt.Errorf("bench iterations must be positive")
	}
	if c.Bench.Rate < 0 {
		return fmt.Errorf("bench rate cannot be negative")
	}
	if c.QueryConcurrency < 1 {
		return fmt.Errorf("query concurrency must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intFromEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func floatFromEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

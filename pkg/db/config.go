package db

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Config holds the Postgres connection settings for the relational store.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// MigrationsDir defaults to <project root>/migrations
	MigrationsDir string
}

// NewConfigFromEnv reads DB_* variables, falling back to local defaults.
func NewConfigFromEnv() Config {
	return Config{
		Host:          getEnvOrDefault("DB_HOST", "localhost"),
		Port:          getEnvOrDefault("DB_PORT", "5432"),
		User:          getEnvOrDefault("DB_USER", "postgres"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          getEnvOrDefault("DB_NAME", "trendgraph"),
		SSLMode:       getEnvOrDefault("DB_SSLMODE", "disable"),
		MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
	}
}

// DSN is the key/value connection string used by gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// URL is the connection URL used by the migrator.
func (c Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func (c Config) migrationsDir() (string, error) {
	if c.MigrationsDir != "" {
		return c.MigrationsDir, nil
	}
	root, err := findProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	return filepath.Join(root, "migrations"), nil
}

// findProjectRoot looks for go.mod file to determine project root
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

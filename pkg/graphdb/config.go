package graphdb

import (
	"fmt"
	"os"
)

// Config holds the Neo4j connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	// Database is empty for the server's default database
	Database string
}

// NewConfigFromEnv reads NEO4J_* variables.
func NewConfigFromEnv() Config {
	return Config{
		URI:      getEnvOrDefault("NEO4J_URI", "bolt://localhost:7687"),
		Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),
	}
}

// Validate checks that the configuration can open a driver.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Username == "" {
		return fmt.Errorf("NEO4J_USERNAME is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

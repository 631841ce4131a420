package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	apperrors "name-address-db/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port            string
	Env             string
	CORSAllowOrigin string

	// SQLite (relational variant)
	SQLitePath string

	// MongoDB (document variant)
	MongoURI    string
	MongoDBName string

	// Neo4j (document variant)
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENV", "development"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		SQLitePath:      getEnv("SQLITE_PATH", "records.db"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "name_address_db"),
		Neo4jURI:        getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:       getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:   getEnv("NEO4J_PASSWORD", "password"),
	}

	cfg.MongoURI = EncodeURICredentials(cfg.MongoURI)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return apperrors.NewConfigValidationFailed("PORT", "must be a TCP port number")
	}
	if c.SQLitePath == "" {
		return apperrors.NewConfigMissingRequired("SQLITE_PATH")
	}
	if c.MongoURI == "" {
		return apperrors.NewConfigMissingRequired("MONGO_URI")
	}
	if c.MongoDBName == "" {
		return apperrors.NewConfigMissingRequired("MONGO_DB_NAME")
	}
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	// An empty Neo4j password is allowed for auth-disabled local instances
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

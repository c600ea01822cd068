package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultCatalogCacheTTL = 30 * time.Second

type Config struct {
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	AppPort         string
	AppEnv          string
	LogLevel        string
	JWTSecret       string
	CORSOrigin      string
	CatalogCacheTTL time.Duration
}

// LoadConfig reads the environment, after merging a local .env file when one
// exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          envOr("DB_PORT", "5432"),
		AppPort:         envOr("APP_PORT", "8080"),
		AppEnv:          envOr("APP_ENV", "development"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigin:      envOr("CORS_ORIGIN", "http://localhost:3000"),
		CatalogCacheTTL: defaultCatalogCacheTTL,
	}

	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
		}
		cfg.CatalogCacheTTL = ttl
	}

	if cfg.DBHost == "" {
		return nil, errors.New("environment variables not loaded properly: DB_HOST is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

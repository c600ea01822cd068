package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DB_PORT", "5433")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("CATALOG_CACHE_TTL", "2m")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, 2*time.Minute, cfg.CatalogCacheTTL)
	})

	t.Run("Defaults", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DB_PORT", "")
		t.Setenv("APP_PORT", "")
		t.Setenv("CATALOG_CACHE_TTL", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, defaultCatalogCacheTTL, cfg.CatalogCacheTTL)
	})

	t.Run("Missing DB host", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("DB_HOST", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Invalid cache ttl", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("CATALOG_CACHE_TTL", "soon")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Missing DB_DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		assert.ErrorContains(t, err, "DB_DSN")
	})

	t.Run("Missing JWT_SECRET", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "dev")
		t.Setenv("JWT_ACCESS_TOKEN_TTL", "")
		t.Setenv("BCRYPT_COST", "")
		t.Setenv("MIGRATE_ON_START", "")
		t.Setenv("TRUST_SHARER_HEADER", "")
		t.Setenv("REDIS_DB", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("STORAGE_PATH", "")
		t.Setenv("HTTP_ADDR", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.IsProduction)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "./data", cfg.StoragePath)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.True(t, cfg.MigrateOnStart)
		assert.False(t, cfg.TrustSharerHeader)
		assert.Equal(t, 0, cfg.RedisDB)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_ENV", "prod")
		t.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
		t.Setenv("BCRYPT_COST", "4")
		t.Setenv("TRUST_SHARER_HEADER", "true")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction)
		assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
		assert.Equal(t, 4, cfg.BcryptCost)
		assert.True(t, cfg.TrustSharerHeader)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, 2, cfg.RedisDB)
	})

	t.Run("Invalid values", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/shareit")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_ACCESS_TOKEN_TTL")

		t.Setenv("JWT_ACCESS_TOKEN_TTL", "15m")
		t.Setenv("BCRYPT_COST", "high")
		_, err = Load()
		assert.ErrorContains(t, err, "BCRYPT_COST")

		t.Setenv("BCRYPT_COST", "4")
		t.Setenv("TRUST_SHARER_HEADER", "maybe")
		_, err = Load()
		assert.ErrorContains(t, err, "TRUST_SHARER_HEADER")
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/booking")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "https://booking.example.com")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "https://booking.example.com", cfg.ProdOrigins)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Run("DB_DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("JWT_SECRET", "test-secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("JWT_SECRET", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost:5432/booking")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadInvalidValues(t *testing.T) {
	t.Run("TTL", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_ACCESS_TOKEN_TTL", "soon")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bcrypt cost", func(t *testing.T) {
		setRequired(t)
		t.Setenv("BCRYPT_COST", "cheap")

		_, err := Load()
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "SERVER_PORT", "DB_DRIVER", "CATALOG_URL", "SESSION_TTL")
	t.Setenv("PAYMENT_LATENCY", "bogus")
	t.Setenv("API_RATE_BURST", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "", cfg.CatalogURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 1700*time.Millisecond, cfg.PaymentLatency)
	assert.Equal(t, 60, cfg.APIRateBurst)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("CATALOG_RATE_LIMIT", "0.5")
	t.Setenv("CATALOG_BURST", "3")
	t.Setenv("PAYMENT_LATENCY", "250ms")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file::memory:", cfg.DatabaseURL)
	assert.Equal(t, 0.5, cfg.CatalogRateLimit)
	assert.Equal(t, 3, cfg.CatalogBurst)
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentLatency)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEmulatorEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EMULATOR_TOKEN", "LISTEN_ADDR", "FLIGHT_ADDR", "DUCKDB_PATH", "INIT_SQL",
		"EXEC_DELAY", "MAX_MEMORY_GB", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestLoadEmulatorConfig(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		clearEmulatorEnv(t)
		_, err := loadEmulatorConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMULATOR_TOKEN is required")
	})

	t.Run("defaults", func(t *testing.T) {
		clearEmulatorEnv(t)
		t.Setenv("EMULATOR_TOKEN", "tok")

		cfg, err := loadEmulatorConfig()
		require.NoError(t, err)
		assert.Equal(t, ":9047", cfg.ListenAddr)
		assert.Equal(t, ":32010", cfg.FlightAddr)
		assert.Empty(t, cfg.DuckDBPath)
		assert.Zero(t, cfg.ExecDelay)
		assert.Zero(t, cfg.RateLimit)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEmulatorEnv(t)
		t.Setenv("EMULATOR_TOKEN", "tok")
		t.Setenv("LISTEN_ADDR", "127.0.0.1:8080")
		t.Setenv("FLIGHT_ADDR", "127.0.0.1:8081")
		t.Setenv("EXEC_DELAY", "250ms")
		t.Setenv("MAX_MEMORY_GB", "4")
		t.Setenv("RATE_LIMIT_RPS", "20")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

		cfg, err := loadEmulatorConfig()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
		assert.Equal(t, "127.0.0.1:8081", cfg.FlightAddr)
		assert.Equal(t, 250*time.Millisecond, cfg.ExecDelay)
		assert.Equal(t, 4, cfg.MaxMemoryGB)
		assert.InDelta(t, 20.0, cfg.RateLimit, 0.001)
		assert.Equal(t, 21, cfg.RateBurst)
		assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSAllowedOrigins)
	})

	t.Run("invalid numbers", func(t *testing.T) {
		for _, k := range []string{"EXEC_DELAY", "MAX_MEMORY_GB", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS"} {
			clearEmulatorEnv(t)
			t.Setenv("EMULATOR_TOKEN", "tok")
			t.Setenv(k, "abc")
			_, err := loadEmulatorConfig()
			require.Error(t, err, k)
			assert.Contains(t, err.Error(), k)
		}
	})
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EmulatorConfig holds the emulator's settings, loaded from environment variables.
type EmulatorConfig struct {
	Token       string
	ListenAddr  string
	FlightAddr  string
	DuckDBPath  string
	InitSQL     string
	ExecDelay   time.Duration
	MaxMemoryGB int
	RateLimit   float64
	RateBurst   int

	CORSAllowedOrigins []string
}

func loadEmulatorConfig() (*EmulatorConfig, error) {
	cfg := &EmulatorConfig{
		Token:      os.Getenv("EMULATOR_TOKEN"),
		ListenAddr: os.Getenv("LISTEN_ADDR"),
		FlightAddr: os.Getenv("FLIGHT_ADDR"),
		DuckDBPath: os.Getenv("DUCKDB_PATH"),
		InitSQL:    os.Getenv("INIT_SQL"),
	}
	if v := os.Getenv("EXEC_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EXEC_DELAY: %w", err)
		}
		cfg.ExecDelay = d
	}
	if v := os.Getenv("MAX_MEMORY_GB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_MEMORY_GB: %w", err)
		}
		cfg.MaxMemoryGB = n
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateBurst = n
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("EMULATOR_TOKEN is required")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":9047"
	}
	if cfg.FlightAddr == "" {
		cfg.FlightAddr = ":32010"
	}
	if cfg.RateLimit > 0 && cfg.RateBurst <= 0 {
		cfg.RateBurst = int(cfg.RateLimit) + 1
	}
	return cfg, nil
}

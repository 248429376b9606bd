// Package main is the entry point for the Dremio emulator: an in-memory
// DuckDB behind the job REST API and a Flight SQL endpoint, for local
// development and tests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dremioai/internal/emulator"
	"dremioai/internal/flightsql"
	"dremioai/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := loadEmulatorConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	engine, err := emulator.OpenEngine(cfg.DuckDBPath)
	if err != nil {
		return err
	}
	defer engine.Close() //nolint:errcheck

	if cfg.MaxMemoryGB > 0 {
		if _, err := engine.DB().ExecContext(ctx, fmt.Sprintf("SET max_memory='%dGB'", cfg.MaxMemoryGB)); err != nil {
			return fmt.Errorf("set max_memory: %w", err)
		}
		logger.Info("memory limit set", "max_memory_gb", cfg.MaxMemoryGB)
	}
	if cfg.InitSQL != "" {
		script, err := os.ReadFile(cfg.InitSQL)
		if err != nil {
			return fmt.Errorf("read INIT_SQL: %w", err)
		}
		if _, err := engine.DB().ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("run INIT_SQL: %w", err)
		}
		logger.Info("init script applied", "path", cfg.InitSQL)
	}

	store := emulator.NewStore(engine, emulator.StoreOptions{Logger: logger, ExecDelay: cfg.ExecDelay})
	defer store.Close()

	hcfg := emulator.HandlerConfig{Store: store, Token: cfg.Token, Logger: logger, AllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.RateLimit > 0 {
		hcfg.RateLimit = &middleware.RateLimitConfig{RequestsPerSecond: cfg.RateLimit, Burst: cfg.RateBurst}
	}
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      emulator.NewHandler(ctx, hcfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	fs := flightsql.NewServer(cfg.FlightAddr, logger, engine.Query, cfg.Token)
	if err := fs.Start(); err != nil {
		return err
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("shutting down emulator")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
		if err := fs.Shutdown(shutdownCtx); err != nil {
			logger.Warn("flight sql shutdown", "error", err)
		}
	}()

	logger.Info("emulator listening", "addr", cfg.ListenAddr, "flight_addr", fs.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = fs.Shutdown(context.Background())
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Command api is the Eurogrid API server.
//
// Usage:
//
//	eurogrid-api
//	API_PORT=8080 eurogrid-api

// @title Eurogrid API
// @version 1.0.0
// @description Trivia grid backend for European baseball: serves daily and custom grids, validates guesses, and reveals cell answers. Categories compile to SQL predicates over a Postgres player database.
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/vschuh/eurogrid/internal/api"
	"github.com/vschuh/eurogrid/internal/batch"
	"github.com/vschuh/eurogrid/internal/cache"
	"github.com/vschuh/eurogrid/internal/condition"
	"github.com/vschuh/eurogrid/internal/config"
	"github.com/vschuh/eurogrid/internal/db"
	"github.com/vschuh/eurogrid/internal/intersect"
	"github.com/vschuh/eurogrid/internal/maintenance"
	"github.com/vschuh/eurogrid/internal/merge"
	"github.com/vschuh/eurogrid/internal/search"
	"github.com/vschuh/eurogrid/internal/store"

	_ "github.com/vschuh/eurogrid/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Static resources: alias merge table and category lists
	merges, err := merge.Load(cfg.MergeFile)
	if err != nil {
		logger.Error("Failed to load merge table", "file", cfg.MergeFile, "error", err)
		os.Exit(1)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Wire the condition compiler and intersection counter
	compiler := condition.NewCompiler(merges)
	players := store.NewPlayerStore(pool.Pool)
	counter := intersect.NewCounter(compiler, players, merges, logger)

	// Background backfill runs on the API pool so reveal stays cheap
	grids := store.NewGridStore(pool.Pool)
	engine := search.NewEngine(counter, search.Config{
		MaxAttempts:       cfg.SearchMaxAttempts,
		MinIntersection:   cfg.SearchMinIntersection,
		PrecomputeAnswers: cfg.SearchPrecomputeAnswers,
	}, logger)
	runner := batch.NewRunner(engine, counter, grids, nil, cfg.PoolRefillFloor, logger)

	// Start maintenance tickers (custom grid retention, answer backfill)
	go maintenance.Start(ctx, grids, runner, maintenance.Config{
		CustomGridSweepInterval: cfg.CustomGridSweepInterval,
		BackfillSweepInterval:   cfg.BackfillSweepInterval,
	}, logger)

	// Create router
	router := api.NewRouter(pool, counter, compiler, merges, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Eurogrid API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rejsermedboern/feedsync/app/api"
	"github.com/rejsermedboern/feedsync/app/catalog"
	"github.com/rejsermedboern/feedsync/app/cfg"
	"github.com/rejsermedboern/feedsync/app/database"
	"github.com/rejsermedboern/feedsync/app/feed"
	"github.com/rejsermedboern/feedsync/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting FeedSync", "version", appCfg.Version)

	// Run-history database
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open run-history database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	runRepo := database.NewRunRepository(db)

	// Feed configurations
	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load feed configurations", "dir", appCfg.FeedsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Feed configurations loaded", "dir", appCfg.FeedsDir, "count", configCache.GetConfigCount())

	// Core components
	store := catalog.NewStore(appCfg.CacheFile)
	httpClient := &http.Client{}
	syncer := feed.NewSyncer(configCache, httpClient, runRepo,
		appCfg.CacheFile, appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second,
		time.Duration(appCfg.FeedDelay)*time.Millisecond)

	if appCfg.SyncOnce {
		runSyncOnce(syncer)
		return
	}

	// Background scheduler
	scheduler := tasks.NewScheduler(syncer, store, time.Duration(appCfg.SyncInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handler := api.NewHandler(store, configCache, runRepo, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("FeedSync started")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("FeedSync shutdown complete")
}

// runSyncOnce performs a single ingestion pass. Individual feed
// failures do not affect the exit code; only a failed cache write does.
func runSyncOnce(syncer *feed.Syncer) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := syncer.Run(ctx)
	if err != nil {
		slog.Error("Sync failed", "error", err)
		os.Exit(1)
	}

	for _, outcome := range summary.Outcomes {
		if outcome.Err != nil {
			slog.Warn("Feed yielded no products", "feed", outcome.Feed, "error", outcome.Err)
		}
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

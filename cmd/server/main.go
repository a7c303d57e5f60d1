package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/api"
	"github.com/makimaki1006/shift-suite-sub009/internal/config"
	"github.com/makimaki1006/shift-suite-sub009/internal/session"
	"github.com/makimaki1006/shift-suite-sub009/internal/shortage"
	"github.com/makimaki1006/shift-suite-sub009/pkg/cache"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)
	logger.Info("Starting shift-suite core", "environment", cfg.Environment)

	// Shared report cache; an empty addr keeps the in-memory fallback
	reportTTL := time.Duration(cfg.Cache.TTL) * time.Second
	reportCache := cache.New(cfg.Cache.Addr, cfg.Cache.DB, cfg.Cache.Password, reportTTL, logger)

	// Session-partitioned data cache
	manager := session.NewManager(cfg.Sessions.MaxSessions, logger)

	// Shortage calculation service
	shortageService := shortage.NewService(
		manager,
		shortage.NewCalculator(cfg.Data.NonOperatingRoles, logger),
		shortage.NewLoader(cfg.Data.Dir, logger),
		reportCache,
		reportTTL,
		logger,
	)

	// Initialize API server
	apiServer := api.NewServer(cfg, logger, reportCache, manager, shortageService)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// Hot-reload configuration on file change
	if configPath := "configs/config.yaml"; fileExists(configPath) {
		watcher := config.NewConfigWatcher(configPath, logger)
		watcher.RegisterWatcher(func(updated *config.Config) {
			logger.Info("Configuration updated", "log_level", updated.LogLevel)
		})
		go func() {
			if err := watcher.Start(ctx); err != nil {
				logger.Warn("Configuration watcher unavailable", "error", err)
			}
		}()
	}

	// Periodic cleanup of idle session partitions
	sessionTTL := time.Duration(cfg.Sessions.TTLMinutes) * time.Minute
	cleanupInterval := time.Duration(cfg.Sessions.CleanupIntervalMinutes) * time.Minute
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := manager.CleanupExpiredSessions(sessionTTL); removed > 0 {
					logger.Info("expired session partitions removed", "count", removed)
				}
			}
		}
	}()

	// Start server
	if err := apiServer.Start(ctx); err != nil {
		logger.Fatal("Server failed to start", "error", err)
	}

	logger.Info("shift-suite core shutdown complete")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

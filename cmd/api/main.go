// ABOUTME: Main entry point for the updates API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legacy-updates-api/api"
	"legacy-updates-api/core/editor"
	"legacy-updates-api/core/interfaces"
	"legacy-updates-api/core/query"
	"legacy-updates-api/infrastructure/cache/memory"
	"legacy-updates-api/infrastructure/cache/redis"
	"legacy-updates-api/infrastructure/logger/logruslog"
	"legacy-updates-api/infrastructure/storage/sqlite"
	"legacy-updates-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslog.NewLogger(cfg.Server.LogLevel)
	logger.Info("Starting updates API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"storage":    cfg.Storage.Path,
	})

	// Open the article store (shared process-wide handle)
	store, err := sqlite.Shared(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open article store: %v", err)
	}
	defer store.Close()

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memoryCache(cfg)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memoryCache(cfg)
		logger.Info("Using memory cache", nil)
	}

	// Create dependencies container
	deps := interfaces.Dependencies{
		Storage: store,
		Cache:   cache,
		Logger:  logger,
	}

	// Create services
	queryService := query.NewFeedQueryService(deps)
	editorService := editor.NewEditorService(deps)

	// Assemble the HTTP handler
	handler := api.NewHandler(api.ServerConfig{
		Logger:      logger,
		EditorToken: cfg.Auth.EditorToken,
		RateLimit:   cfg.Server.RateLimit,
		RateWindow:  time.Duration(cfg.Server.RateWindowSeconds) * time.Second,
	}, queryService, editorService)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// memoryCache builds the in-process cache from configuration
func memoryCache(cfg *config.Config) interfaces.Cache {
	return memory.NewMemoryCache(
		time.Duration(cfg.Cache.Memory.DefaultExpiration)*time.Second,
		time.Duration(cfg.Cache.Memory.CleanupInterval)*time.Second,
	)
}

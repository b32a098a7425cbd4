package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/DarkMK69/PTsTest/internal/cache"
	"github.com/DarkMK69/PTsTest/internal/config"
	"github.com/DarkMK69/PTsTest/internal/handler"
	"github.com/DarkMK69/PTsTest/internal/logger"
	"github.com/DarkMK69/PTsTest/internal/metrics"
	"github.com/DarkMK69/PTsTest/internal/middleware"
	"github.com/DarkMK69/PTsTest/internal/repository"
	"github.com/DarkMK69/PTsTest/internal/router"
	"github.com/DarkMK69/PTsTest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Starting entity API",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	// Metrics registry
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Entity repository (in-memory, loaded with the seed record)
	entityRepo := repository.NewMemoryEntityRepository()
	defer entityRepo.Close()
	log.Info("In-memory entity repository initialized")

	if count, err := entityRepo.Count(context.Background()); err == nil {
		collector.SetEntityCount(count)
	}

	// Export payload cache
	var payloadCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis connection failed, falling back to memory cache", zap.Error(err))
			memCache := cache.NewMemoryCache()
			defer memCache.Close()
			payloadCache = memCache
		} else {
			payloadCache = cache.NewRedisCache(redisClient)
			defer redisClient.Close()
			log.Info("Redis payload cache initialized")
		}
	case "none":
		log.Info("Export payload cache disabled")
	default: // memory
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		payloadCache = memCache
		log.Info("Memory payload cache initialized")
	}

	// Export pipeline
	sender := service.NewWebhookSender(cfg.Export.Timeout, log)
	exportService := service.NewExportService(entityRepo, sender, cfg.Export.MockServiceURL, log)
	exportService.SetRecorder(collector)
	if payloadCache != nil {
		exportService.SetPayloadCache(payloadCache, cfg.Cache.TTL)
	}

	// Rate limiter for the export route
	exportLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:            rate.Limit(cfg.RateLimit.ExportPerMinute / 60.0),
		Burst:           cfg.RateLimit.ExportBurst,
		CleanupInterval: cfg.RateLimit.CleanupInterval,
	})
	defer exportLimiter.Stop()

	// Handlers
	healthHandler := handler.New(cfg.App.Version, entityRepo)
	entityHandler := handler.NewEntityHandler(entityRepo)
	entityHandler.SetRecorder(collector)
	exportHandler := handler.NewExportHandler(exportService)

	// Create router
	r := router.New(router.Config{
		Handler:        healthHandler,
		EntityHandler:  entityHandler,
		ExportHandler:  exportHandler,
		Logger:         log,
		Recorder:       collector,
		MetricsHandler: metrics.Handler(registry),
		ExportLimiter:  exportLimiter.Middleware(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", zap.String("address", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}

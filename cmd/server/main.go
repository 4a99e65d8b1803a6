package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sizeshop/backend/config"
	httpDelivery "github.com/sizeshop/backend/internal/delivery/http"
	"github.com/sizeshop/backend/internal/infrastructure/cache"
	"github.com/sizeshop/backend/internal/infrastructure/logging"
	"github.com/sizeshop/backend/internal/infrastructure/monitoring"
	"github.com/sizeshop/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting SizeShop backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Int("max_html_bytes", cfg.Detection.MaxHTMLBytes),
		zap.Int("rate_limit_per_ip", cfg.RateLimit.PerIP),
	)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCacheWithCleanup(cfg.Cache.CleanupInterval)
	defer memoryCache.Close()

	metrics := monitoring.NewMetrics()

	// Initialize usecase layer
	scanService := usecase.NewScanService(
		memoryCache,
		metrics,
		logger,
		usecase.ScanServiceConfig{
			CacheTTL:     cfg.Cache.TTL,
			MaxHTMLBytes: cfg.Detection.MaxHTMLBytes,
			QuoteAsInch:  cfg.Detection.QuoteAsInch,
		},
	)

	handler := httpDelivery.NewHandler(scanService)
	router := httpDelivery.SetupRouter(cfg, handler, metrics, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}

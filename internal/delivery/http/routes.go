package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sizeshop/backend/config"
	"github.com/sizeshop/backend/internal/infrastructure/monitoring"
)

// jsonOverhead allows for JSON escaping of the posted HTML
const jsonOverhead = 64 * 1024

// SetupRouter creates and configures the Gin router. metrics and logger may be nil.
func SetupRouter(cfg *config.Config, handler *Handler, metrics *monitoring.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(GzipMiddleware())
	if cfg.Detection.MaxHTMLBytes > 0 {
		router.Use(BodyLimitMiddleware(int64(2*cfg.Detection.MaxHTMLBytes) + jsonOverhead))
	}

	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		measurements := v1.Group("/measurements")
		{
			measurements.POST("/scan", handler.ScanMeasurements)
			measurements.GET("/last", handler.LastScan)
			measurements.POST("/highlight", handler.HighlightMeasurements)
		}
	}

	return router
}

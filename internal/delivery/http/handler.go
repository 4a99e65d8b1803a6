package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sizeshop/backend/internal/domain"
	"github.com/sizeshop/backend/internal/infrastructure/htmldoc"
	"github.com/sizeshop/backend/internal/usecase"
)

// Version is reported by the health check
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService *usecase.ScanService
}

// NewHandler creates a new HTTP handler. A nil service makes the measurement
// endpoints answer 501.
func NewHandler(scanService *usecase.ScanService) *Handler {
	return &Handler{scanService: scanService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sizeshop-backend",
		"version": Version,
	})
}

// ScanMeasurements handles page scan requests
func (h *Handler) ScanMeasurements(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var request domain.ScanRequest
	if !bindJSON(c, &request) {
		return
	}

	result, err := h.scanService.Scan(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LastScan returns the most recent scan of the page given by ?url=
func (h *Handler) LastScan(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	pageURL := strings.TrimSpace(c.Query("url"))
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	result, err := h.scanService.LastScan(c.Request.Context(), pageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HighlightMeasurements returns the page body with measurements marked
func (h *Handler) HighlightMeasurements(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var request domain.HighlightRequest
	if !bindJSON(c, &request) {
		return
	}

	result, err := h.scanService.Highlight(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.scanService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Measurement scanning not configured",
		})
		return false
	}
	return true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if isBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, htmldoc.ErrDocumentTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, htmldoc.ErrUnsupportedContent):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidDocument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrScanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	case errors.Is(err, context.Canceled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request canceled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

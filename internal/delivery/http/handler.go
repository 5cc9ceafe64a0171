package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecolens/backend/internal/domain"
)

// Analyzer is the slice of the analysis engine the HTTP layer needs.
type Analyzer interface {
	Analyze(ctx context.Context, raw map[string]any) (*domain.UnifiedAnalysisResult, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	analyzer Analyzer
}

// NewHandler creates a new HTTP handler.
func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ecolens-backend",
		"version": "1.0.0",
	})
}

// AnalyzeProduct runs the sustainability analysis for a raw product payload.
// AI unavailability is never an error here — degraded results come back as a
// normal 200 with a lower confidence level.
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrMissingProductName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
			return
		}
		// The engine contract forbids other errors; treat any as a bug.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/pkg/cache"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

type HealthHandler struct {
	cache  cache.ReportCache
	logger logger.Logger
}

func NewHealthHandler(c cache.ReportCache, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		cache:  c,
		logger: logger,
	}
}

// GET /health - Quick health check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "shift-suite-core",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /ready - Readiness check including the shared cache probe. The session
// store and calculator are in-process, so the service stays ready on the
// in-memory cache fallback; the shared cache state is reported for operators.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	sharedCache := "connected"
	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			sharedCache = "fallback"
		}
	} else {
		sharedCache = "disabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ready",
		"service":      "shift-suite-core",
		"shared_cache": sharedCache,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

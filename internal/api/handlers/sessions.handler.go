package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/internal/metrics"
	"github.com/makimaki1006/shift-suite-sub009/internal/session"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

type SessionsHandler struct {
	manager *session.Manager
	ttl     time.Duration
	logger  logger.Logger
}

func NewSessionsHandler(manager *session.Manager, ttl time.Duration, logger logger.Logger) *SessionsHandler {
	return &SessionsHandler{
		manager: manager,
		ttl:     ttl,
		logger:  logger,
	}
}

// GET /api/v1/sessions/stats - cache usage counters
func (h *SessionsHandler) Stats(c *gin.Context) {
	stats := h.manager.Stats()
	metrics.ActiveSessions.Set(float64(stats.ActiveSessions))

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  stats,
	})
}

// DELETE /api/v1/sessions/current - clear the caller's own partition
func (h *SessionsHandler) ClearCurrent(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "No session to clear",
		})
		return
	}

	h.manager.ClearSession(sessionID, c.GetString("tenant_id"), c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// POST /api/v1/sessions/cleanup - remove partitions idle past the TTL. Meant
// for an external scheduler; the store never cleans up on its own.
func (h *SessionsHandler) Cleanup(c *gin.Context) {
	removed := h.manager.CleanupExpiredSessions(h.ttl)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"removed": removed,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/makimaki1006/shift-suite-sub009/internal/shortage"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

type ShortageHandler struct {
	service           *shortage.Service
	defaultPeriodDays int
	logger            logger.Logger
}

func NewShortageHandler(service *shortage.Service, defaultPeriodDays int, logger logger.Logger) *ShortageHandler {
	return &ShortageHandler{
		service:           service,
		defaultPeriodDays: defaultPeriodDays,
		logger:            logger,
	}
}

// PeriodDays is a pointer so an omitted field falls back to the configured
// default while an explicit 0 still reaches the calculator and is rejected.
type computeRequest struct {
	Scenario   string `json:"scenario" binding:"required"`
	PeriodDays *int   `json:"period_days"`
}

func identityFromContext(c *gin.Context) shortage.Identity {
	return shortage.Identity{
		SessionID: c.GetString("session_id"),
		CompanyID: c.GetString("tenant_id"),
		UserID:    c.GetString("user_id"),
	}
}

// POST /api/v1/shortage/compute - run the shortage calculation for the
// caller's session and cache the result under its partition.
func (h *ShortageHandler) Compute(c *gin.Context) {
	var req computeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	periodDays := h.defaultPeriodDays
	if req.PeriodDays != nil {
		periodDays = *req.PeriodDays
	}

	report, err := h.service.Compute(c.Request.Context(), identityFromContext(c), req.Scenario, periodDays)
	if err != nil {
		switch {
		case errors.Is(err, shortage.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "Invalid reporting period",
				"detail": err.Error(),
			})
		case errors.Is(err, shortage.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{
				"status": "error",
				"error":  "No scenario data",
				"detail": err.Error(),
			})
		default:
			h.logger.Error("shortage computation failed", "scenario", req.Scenario, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"error":  "Shortage computation failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"report": report,
	})
}

// GET /api/v1/shortage/report - return the report cached for the caller's
// session, if any.
func (h *ShortageHandler) Report(c *gin.Context) {
	report, ok := h.service.CachedReport(c.Request.Context(), identityFromContext(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "No cached report for this session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"report": report,
	})
}

package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/internal/service"
)

type WorkLogHandler struct {
	workLogSvc *service.WorkLogService
	cache      *DashboardCache
	logger     *zap.Logger
}

func NewWorkLogHandler(workLogSvc *service.WorkLogService, cache *DashboardCache, logger *zap.Logger) *WorkLogHandler {
	return &WorkLogHandler{
		workLogSvc: workLogSvc,
		cache:      cache,
		logger:     logger,
	}
}

// GetToday ensures today's rows exist for every active project and returns them
func (h *WorkLogHandler) GetToday(c *gin.Context) {
	rows, err := h.workLogSvc.GetTodayWorkData(c)
	if err != nil {
		h.logger.Error("Failed to get today work data", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"rows": rows, "count": len(rows)})
}

// GetRange returns past work logs between start and end (inclusive), newest first
func (h *WorkLogHandler) GetRange(c *gin.Context) {
	start, err := parseDateParam(c, "start")
	if err != nil {
		return
	}
	end, err := parseDateParam(c, "end")
	if err != nil {
		return
	}

	rows, svcErr := h.workLogSvc.GetPastWorkData(c, start, end)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(200, gin.H{"rows": rows, "count": len(rows)})
}

// BulkUpdate rewrites progress, hours and memo for multiple log rows
func (h *WorkLogHandler) BulkUpdate(c *gin.Context) {
	var req struct {
		Updates []model.WorkLogUpdate `json:"updates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	updated, err := h.workLogSvc.UpdateWorkLogs(c, req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(c)

	c.JSON(200, gin.H{"updated": updated})
}

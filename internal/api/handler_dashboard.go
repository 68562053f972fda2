package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/internal/service"
)

type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	cache        *DashboardCache
	logger       *zap.Logger
}

func NewDashboardHandler(dashboardSvc *service.DashboardService, cache *DashboardCache, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		cache:        cache,
		logger:       logger,
	}
}

// GetSummary returns today's hours and weekly averages with deltas
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var cached model.WorkLogSummary
	if h.cache.Get(c, summaryCacheKey, &cached) {
		c.JSON(200, cached)
		return
	}

	summary, err := h.dashboardSvc.GetWorkLogSummary(c)
	if err != nil {
		h.logger.Error("Failed to build work log summary", zap.Error(err))
		respondError(c, err)
		return
	}

	h.cache.Set(c, summaryCacheKey, summary)
	c.JSON(200, summary)
}

// GetProjectsSummary returns per-project progress and completion estimates
func (h *DashboardHandler) GetProjectsSummary(c *gin.Context) {
	var cached []model.ProjectSummary
	if h.cache.Get(c, projectsCacheKey, &cached) {
		c.JSON(200, gin.H{"projects": cached, "count": len(cached)})
		return
	}

	rows, err := h.dashboardSvc.GetProjectsSummary(c)
	if err != nil {
		h.logger.Error("Failed to build projects summary", zap.Error(err))
		respondError(c, err)
		return
	}

	h.cache.Set(c, projectsCacheKey, rows)
	c.JSON(200, gin.H{"projects": rows, "count": len(rows)})
}

func (h *DashboardHandler) GetChartData(c *gin.Context) {
	rows, err := h.dashboardSvc.GetChartData(c)
	if err != nil {
		h.logger.Error("Failed to build chart data", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"rows": rows, "count": len(rows)})
}

// GetTimeline returns past work logs in a date range, oldest first
func (h *DashboardHandler) GetTimeline(c *gin.Context) {
	start, err := parseDateParam(c, "start")
	if err != nil {
		return
	}
	end, err := parseDateParam(c, "end")
	if err != nil {
		return
	}

	rows, svcErr := h.dashboardSvc.GetTimelineData(c, start, end)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(200, gin.H{"rows": rows, "count": len(rows)})
}

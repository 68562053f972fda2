package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/internal/service"
)

type ProjectHandler struct {
	syncSvc    *service.SyncService
	projectSvc *service.ProjectService
	cache      *DashboardCache
	logger     *zap.Logger
}

func NewProjectHandler(syncSvc *service.SyncService, projectSvc *service.ProjectService, cache *DashboardCache, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		syncSvc:    syncSvc,
		projectSvc: projectSvc,
		cache:      cache,
		logger:     logger,
	}
}

// Sync pulls the remote database and reconciles local projects
func (h *ProjectHandler) Sync(c *gin.Context) {
	result, err := h.syncSvc.Sync(c)
	if err != nil {
		h.logger.Error("Sync failed", zap.Error(err))
		respondError(c, err)
		return
	}

	// 동기화 이후 대시보드 캐시 무효화
	h.cache.Invalidate(c)

	c.JSON(200, result)
}

// ListProjects returns projects sorted by status priority.
// filter=active|archived narrows the set.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var (
		projects []model.Project
		err      error
	)

	switch c.Query("filter") {
	case "active":
		projects, err = h.projectSvc.GetActiveProjects(c)
	case "archived":
		projects, err = h.projectSvc.GetArchivedProjects(c)
	case "":
		projects, err = h.projectSvc.GetAllProjectsSorted(c)
	default:
		c.JSON(400, gin.H{"error": "unknown filter: " + c.Query("filter")})
		return
	}
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"projects": projects, "count": len(projects)})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid project id"})
		return
	}

	project, err := h.projectSvc.GetProjectByID(c, id)
	if err != nil {
		h.logger.Error("Failed to get project", zap.Int("id", id), zap.Error(err))
		respondError(c, err)
		return
	}
	if project == nil {
		c.JSON(404, gin.H{"error": "project not found"})
		return
	}

	c.JSON(200, project)
}

// BulkUpdate rewrites the locally owned fields of multiple projects
func (h *ProjectHandler) BulkUpdate(c *gin.Context) {
	var req struct {
		Updates []model.ProjectLocalUpdate `json:"updates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	updated, err := h.projectSvc.BulkUpdateProjects(c, req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(c)

	c.JSON(200, gin.H{"updated": updated})
}

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/pkg/metrics"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	projectHandler *ProjectHandler,
	workLogHandler *WorkLogHandler,
	dashboardHandler *DashboardHandler,
	logger *zap.Logger,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()

	// 요청 로그 미들웨어
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
		metrics.RecordHTTPRequestDuration(
			c.Request.Method, path, fmt.Sprintf("%d", c.Writer.Status()), latency,
		)
	})

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	// Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Projects
	r.POST("/projects/sync", projectHandler.Sync)
	r.GET("/projects", projectHandler.ListProjects)
	r.GET("/projects/:id", projectHandler.GetProject)
	r.PUT("/projects", projectHandler.BulkUpdate)

	// Work logs
	r.GET("/worklogs/today", workLogHandler.GetToday)
	r.GET("/worklogs", workLogHandler.GetRange)
	r.PUT("/worklogs", workLogHandler.BulkUpdate)

	// Dashboard
	r.GET("/dashboard/summary", dashboardHandler.GetSummary)
	r.GET("/dashboard/projects", dashboardHandler.GetProjectsSummary)
	r.GET("/dashboard/chart", dashboardHandler.GetChartData)
	r.GET("/dashboard/timeline", dashboardHandler.GetTimeline)

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}

package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/config"
	"github.com/zoklk/ProjectTracker/internal/api"
	"github.com/zoklk/ProjectTracker/internal/mq"
	"github.com/zoklk/ProjectTracker/internal/notion"
	"github.com/zoklk/ProjectTracker/internal/repository"
	"github.com/zoklk/ProjectTracker/internal/service"
	"github.com/zoklk/ProjectTracker/pkg/db"
	"github.com/zoklk/ProjectTracker/pkg/logger"
	"github.com/zoklk/ProjectTracker/pkg/redis"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// 2. Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := repository.EnsureSchema(context.Background(), dbConn); err != nil {
		log.Fatal("Schema initialization failed", zap.Error(err))
	}

	// 3. Init Redis (dashboard cache)
	rdb := redis.NewRedisClient(cfg.Redis)

	// 4. Init RabbitMQ producer. Optional: sync still works without it.
	var publisher service.EventPublisher
	if cfg.MQ.URL != "" {
		producer, err := mq.NewProducer(cfg.MQ.URL)
		if err != nil {
			log.Fatal("MQ initialization failed", zap.Error(err))
		}
		defer producer.Close()
		publisher = producer
	}

	// 5. Init Notion client
	notionClient := notion.NewClient(cfg.Notion, log)

	// 6. Init repositories
	projectRepo := repository.NewProjectRepository(dbConn, log)
	workLogRepo := repository.NewWorkLogRepository(dbConn, log)

	// 7. Init services
	syncService := service.NewSyncService(notionClient, projectRepo, publisher, log)
	projectService := service.NewProjectService(projectRepo, log)
	workLogService := service.NewWorkLogService(workLogRepo, projectService, log)
	dashboardService := service.NewDashboardService(projectService, workLogService, workLogRepo, log)

	// 8. Init handlers
	cache := api.NewDashboardCache(rdb, log)
	projectHandler := api.NewProjectHandler(syncService, projectService, cache, log)
	workLogHandler := api.NewWorkLogHandler(workLogService, cache, log)
	dashboardHandler := api.NewDashboardHandler(dashboardService, cache, log)

	// 9. Init router
	router := api.NewRouter(projectHandler, workLogHandler, dashboardHandler, log, dbConn)

	// 10. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}

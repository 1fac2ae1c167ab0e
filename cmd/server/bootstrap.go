package main

import (
	"github.com/RadW2020/shogunito/backend/internal/config"
	"github.com/RadW2020/shogunito/backend/internal/handlers"
	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/internal/utils"
	"github.com/RadW2020/shogunito/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	dailyDigestService *services.DailyDigestService
	taskQueue          services.TaskQueue
	worker             *services.Worker
	authHandler        *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed workflow statuses and system config defaults
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	notificationService := services.NewNotificationService(models.GetDB())
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.ProcessTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.ProcessTask)
			worker.Start()
		}
	}

	// Initialize and start the daily digest scheduler
	dailyDigestService := services.NewDailyDigestService(models.GetDB(), notificationService)
	dailyDigestService.StartScheduler()

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		dailyDigestService: dailyDigestService,
		taskQueue:          taskQueue,
		worker:             worker,
		authHandler:        authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.dailyDigestService.StopScheduler()
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}

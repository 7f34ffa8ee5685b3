package main

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/config"
	"github.com/Bithika-Jain/Project-Exhibition/internal/handlers"
	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/Bithika-Jain/Project-Exhibition/internal/utils"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	notificationService *services.NotificationService
	taskQueue           services.TaskQueue
	worker              *services.Worker
	authHandler         *handlers.AuthHandler
	projectHandler      *handlers.ProjectHandler
	applicationHandler  *handlers.ApplicationHandler
	studentHandler      *handlers.StudentHandler
	facultyHandler      *handlers.FacultyHandler
	committeeHandler    *handlers.CommitteeHandler
	systemLogHandler    *handlers.SystemLogHandler
	healthHandler       *handlers.HealthHandler
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

	// Seed default data (admin account, default system config)
	if err := models.SeedDefaultData(cfg.Admin.InitialPassword); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	notificationService := services.NewNotificationService(models.GetDB(), taskQueue)
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

	db := models.GetDB()
	return &appServices{
		notificationService: notificationService,
		taskQueue:           taskQueue,
		worker:              worker,
		authHandler:         handlers.NewAuthHandler(db, cfg),
		projectHandler:      handlers.NewProjectHandler(db),
		applicationHandler:  handlers.NewApplicationHandler(db, notificationService),
		studentHandler:      handlers.NewStudentHandler(db),
		facultyHandler:      handlers.NewFacultyHandler(db),
		committeeHandler:    handlers.NewCommitteeHandler(db),
		systemLogHandler:    handlers.NewSystemLogHandler(db),
		healthHandler:       handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}

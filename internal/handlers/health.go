package handlers

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports the status of the service's subsystems.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	// Queue mode
	taskQueue := services.GetTaskQueue()
	queueMode := "sync"
	if taskQueue != nil && taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Proposals awaiting committee review
	var pendingCount int64
	models.GetDB().Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusPending).
		Count(&pendingCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "project-exhibition",
		"components": gin.H{
			"database":         dbStatus,
			"queue_mode":       queueMode,
			"pending_projects": pendingCount,
		},
	})
}

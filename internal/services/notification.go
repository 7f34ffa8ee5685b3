package services

import (
	"context"
	"fmt"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/logger"
	"gorm.io/gorm"
)

// NotificationService turns application decisions into queued email
// jobs and processes them off the request path.
type NotificationService struct {
	db           *gorm.DB
	queue        TaskQueue
	emailService *EmailService
}

func NewNotificationService(db *gorm.DB, queue TaskQueue) *NotificationService {
	return &NotificationService{
		db:           db,
		queue:        queue,
		emailService: NewEmailService(db),
	}
}

// NotifyDecision enqueues an email job for a decision on an application.
func (s *NotificationService) NotifyDecision(application *models.Application, decision string) error {
	if s.queue == nil {
		return nil
	}

	task, err := s.buildTask(application, decision)
	if err != nil {
		return err
	}

	return s.queue.Enqueue(task)
}

func (s *NotificationService) buildTask(application *models.Application, decision string) (*NotificationTask, error) {
	student := application.Student
	if student == nil || student.User == nil {
		var loaded models.Student
		if err := s.db.Preload("User").First(&loaded, application.StudentID).Error; err != nil {
			return nil, fmt.Errorf("load student %d: %w", application.StudentID, err)
		}
		student = &loaded
	}

	project := application.Project
	if project == nil {
		var loaded models.Project
		if err := s.db.First(&loaded, application.ProjectID).Error; err != nil {
			return nil, fmt.Errorf("load project %d: %w", application.ProjectID, err)
		}
		project = &loaded
	}

	task := &NotificationTask{
		ApplicationID: application.ID,
		ProjectID:     project.ID,
		ProjectTitle:  project.Title,
		Decision:      decision,
	}
	if student.User != nil {
		task.StudentName = student.User.FullName()
		task.StudentEmail = student.User.Email
	}

	return task, nil
}

// ProcessTask delivers one queued notification. Registered as the
// processor on both the sync queue and the async worker.
func (s *NotificationService) ProcessTask(ctx context.Context, task *NotificationTask) error {
	if err := s.emailService.SendDecisionNotification(task); err != nil {
		LogError("notification", "send", fmt.Sprintf("Failed to email decision for application %d", task.ApplicationID), nil, "", "", task)
		return err
	}

	logger.Infof("[Notification] Delivered %s notification for application %d", task.Decision, task.ApplicationID)
	LogInfo("notification", "send", fmt.Sprintf("Emailed %s decision for project %q", task.Decision, task.ProjectTitle), nil, "", "", task)
	return nil
}

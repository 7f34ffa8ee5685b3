package services

import (
	"errors"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/logger"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

type ApplicationService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewApplicationService creates the application workflow service.
// notifier may be nil; decision notifications are then skipped.
func NewApplicationService(db *gorm.DB, notifier *NotificationService) *ApplicationService {
	return &ApplicationService{db: db, notifier: notifier}
}

type ApplyRequest struct {
	ProjectID uint     `json:"project_id" binding:"required"`
	Priority  int      `json:"priority" binding:"omitempty,min=1,max=3"`
	CGPA      *float64 `json:"cgpa" binding:"omitempty,min=0,max=10"`
	Skills    string   `json:"skills"`
}

// Create files an application and consumes one project seat. The seat
// decrement is a guarded conditional update inside the transaction, so
// two concurrent applications cannot oversell the last seat.
func (s *ApplicationService) Create(userID uint, req *ApplyRequest) (*models.Application, error) {
	student, err := studentForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Application{}).
		Where("student_id = ?", student.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count >= models.MaxApplicationsPerStudent {
		return nil, response.NewBadRequest("you can apply to at most 3 projects")
	}

	var existing models.Application
	err = s.db.Where("student_id = ? AND project_id = ?", student.ID, req.ProjectID).
		First(&existing).Error
	if err == nil {
		return nil, response.NewBadRequest("you have already applied to this project")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	if !project.IsApproved {
		return nil, response.NewBadRequest("project is not yet approved")
	}

	priority := req.Priority
	if priority == 0 {
		priority = 1
	}

	application := models.Application{
		StudentID: student.ID,
		ProjectID: project.ID,
		Priority:  priority,
		CGPA:      req.CGPA,
		Skills:    req.Skills,
		Status:    models.ApplicationStatusPending,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Project{}).
			Where("id = ? AND seats_available > ?", project.ID, 0).
			UpdateColumn("seats_available", gorm.Expr("seats_available - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.NewBadRequest("no seats available")
		}
		return tx.Create(&application).Error
	}); err != nil {
		return nil, err
	}

	return &application, nil
}

// List returns applications scoped by role: admins see all, students
// their own, faculty those on their projects. An account with no role
// profile sees an empty list.
func (s *ApplicationService) List(userID uint, isAdmin bool) ([]models.Application, error) {
	if isAdmin {
		var applications []models.Application
		if err := s.db.
			Preload("Student").Preload("Student.User").Preload("Project").
			Order("applied_at DESC").
			Find(&applications).Error; err != nil {
			return nil, err
		}
		return applications, nil
	}

	if _, err := studentForUser(s.db, userID); err == nil {
		return s.My(userID)
	}
	if _, err := facultyForUser(s.db, userID); err == nil {
		return s.FacultyApplications(userID)
	}

	return []models.Application{}, nil
}

// My returns the calling student's applications, newest first.
func (s *ApplicationService) My(userID uint) ([]models.Application, error) {
	student, err := studentForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var applications []models.Application
	if err := s.db.Where("student_id = ?", student.ID).
		Preload("Project").
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

// FacultyApplications returns every application on the calling faculty's
// projects, with the applicant's account attached.
func (s *ApplicationService) FacultyApplications(userID uint) ([]models.Application, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var applications []models.Application
	if err := s.db.
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("projects.faculty_id = ? AND projects.deleted_at IS NULL", faculty.ID).
		Preload("Student").Preload("Student.User").Preload("Project").
		Order("applications.applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

// Get returns a single application, visible to the owning student, the
// owning faculty, or an admin.
func (s *ApplicationService) Get(userID, id uint, isAdmin bool) (*models.Application, error) {
	var application models.Application
	if err := s.db.Preload("Student").Preload("Student.User").
		Preload("Project").Preload("Project.Faculty").
		First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("application not found")
		}
		return nil, err
	}

	if isAdmin {
		return &application, nil
	}
	if student, err := studentForUser(s.db, userID); err == nil && student.ID == application.StudentID {
		return &application, nil
	}
	if faculty, err := facultyForUser(s.db, userID); err == nil &&
		application.Project != nil && application.Project.FacultyID == faculty.ID {
		return &application, nil
	}

	return nil, response.NewForbidden("you cannot view this application")
}

// Select picks the applicant for a seat. The student's other pending or
// shortlisted applications are force-rejected in the same transaction;
// those force-rejections do not restore seats on their projects.
func (s *ApplicationService) Select(userID, id uint) (*models.Application, error) {
	application, err := s.ownedApplication(userID, id)
	if err != nil {
		return nil, err
	}

	if application.Status != models.ApplicationStatusPending &&
		application.Status != models.ApplicationStatusShortlisted {
		return nil, response.NewBadRequest("only pending or shortlisted applications can be selected")
	}

	var selectedCount int64
	if err := s.db.Model(&models.Application{}).
		Where("student_id = ? AND status = ?", application.StudentID, models.ApplicationStatusSelected).
		Count(&selectedCount).Error; err != nil {
		return nil, err
	}
	if selectedCount > 0 {
		return nil, response.NewBadRequest("student is already selected for another project")
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(application).
			Update("status", models.ApplicationStatusSelected).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("student_id = ? AND id <> ?", application.StudentID, application.ID).
			Where("status IN ?", []string{models.ApplicationStatusPending, models.ApplicationStatusShortlisted}).
			Update("status", models.ApplicationStatusRejected).Error
	}); err != nil {
		return nil, err
	}

	s.notifyDecision(application, models.ApplicationStatusSelected)

	return application, nil
}

// Reject turns down an application and releases its seat back to the
// project. The seat increment is capped at full capacity.
func (s *ApplicationService) Reject(userID, id uint) (*models.Application, error) {
	application, err := s.ownedApplication(userID, id)
	if err != nil {
		return nil, err
	}

	if application.Status == models.ApplicationStatusRejected {
		return nil, response.NewBadRequest("application is already rejected")
	}

	holdsSeat := application.HoldsSeat()

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(application).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return err
		}
		if !holdsSeat {
			return nil
		}
		return tx.Model(&models.Project{}).
			Where("id = ? AND seats_available < seats", application.ProjectID).
			UpdateColumn("seats_available", gorm.Expr("seats_available + 1")).Error
	}); err != nil {
		return nil, err
	}

	s.notifyDecision(application, models.ApplicationStatusRejected)

	return application, nil
}

// Shortlist marks a pending application as shortlisted.
func (s *ApplicationService) Shortlist(userID, id uint) (*models.Application, error) {
	application, err := s.ownedApplication(userID, id)
	if err != nil {
		return nil, err
	}

	if application.Status != models.ApplicationStatusPending {
		return nil, response.NewBadRequest("only pending applications can be shortlisted")
	}

	if err := s.db.Model(application).
		Update("status", models.ApplicationStatusShortlisted).Error; err != nil {
		return nil, err
	}

	s.notifyDecision(application, models.ApplicationStatusShortlisted)

	return application, nil
}

// Withdraw deletes the calling student's own application. Pending and
// shortlisted withdrawals release the seat; a selected application must
// stay until the faculty rejects it.
func (s *ApplicationService) Withdraw(userID, id uint) error {
	student, err := studentForUser(s.db, userID)
	if err != nil {
		return err
	}

	var application models.Application
	if err := s.db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("application not found")
		}
		return err
	}
	if application.StudentID != student.ID {
		return response.NewForbidden("you do not own this application")
	}
	if application.Status == models.ApplicationStatusSelected {
		return response.NewBadRequest("cannot withdraw a selected application")
	}

	restoresSeat := application.Status == models.ApplicationStatusPending ||
		application.Status == models.ApplicationStatusShortlisted

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&application).Error; err != nil {
			return err
		}
		if !restoresSeat {
			return nil
		}
		return tx.Model(&models.Project{}).
			Where("id = ? AND seats_available < seats", application.ProjectID).
			UpdateColumn("seats_available", gorm.Expr("seats_available + 1")).Error
	})
}

// ownedApplication loads an application whose project belongs to the
// calling faculty.
func (s *ApplicationService) ownedApplication(userID, id uint) (*models.Application, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var application models.Application
	if err := s.db.Preload("Project").Preload("Student").Preload("Student.User").
		First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("application not found")
		}
		return nil, err
	}

	if application.Project == nil || application.Project.FacultyID != faculty.ID {
		return nil, response.NewForbidden("you do not own this application's project")
	}

	return &application, nil
}

func (s *ApplicationService) notifyDecision(application *models.Application, status string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyDecision(application, status); err != nil {
		logger.Warnf("Failed to enqueue decision notification for application %d: %v", application.ID, err)
	}
}

package services

import (
	"errors"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Title      string `form:"title"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ProjectItem is a project plus its application count.
type ProjectItem struct {
	models.Project
	ApplicationsCount int64  `gorm:"column:applications_count" json:"applications_count"`
	FacultyName       string `gorm:"-" json:"faculty_name,omitempty"`
}

type ProjectListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []ProjectItem `json:"items"`
}

type CreateProjectRequest struct {
	Title      string `json:"title" binding:"required"`
	Abstract   string `json:"abstract" binding:"required"`
	Timeline   string `json:"timeline"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Seats      int    `json:"seats" binding:"omitempty,min=1"`
}

type UpdateProjectRequest struct {
	Title      string `json:"title"`
	Abstract   string `json:"abstract"`
	Timeline   string `json:"timeline"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Seats      *int   `json:"seats" binding:"omitempty,min=1"`
}

type ReviewRequest struct {
	Comment string `json:"comment"`
}

const applicationsCountSelect = "projects.*, (SELECT COUNT(*) FROM applications a WHERE a.project_id = projects.id) AS applications_count"

// List returns paginated projects visible to the caller. Students see
// only committee-approved projects; faculty and committee see all.
func (s *ProjectService) List(userID uint, req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{})

	if _, err := facultyForUser(s.db, userID); err != nil {
		// No faculty profile: restrict to approved projects
		query = query.Where("is_approved = ?", true)
	}

	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Difficulty != "" {
		query = query.Where("difficulty = ?", req.Difficulty)
	}

	var total int64
	query.Count(&total)

	var items []ProjectItem
	offset := (req.Page - 1) * req.PageSize
	if err := query.Select(applicationsCountSelect).
		Preload("Faculty").Preload("Faculty.User").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	fillFacultyNames(items)

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// GetByID returns a project. Unapproved projects are invisible to
// callers without a faculty profile.
func (s *ProjectService) GetByID(userID, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Faculty").Preload("Faculty.User").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !project.IsApproved {
		if _, err := facultyForUser(s.db, userID); err != nil {
			return nil, response.NewNotFound("project not found")
		}
	}

	return &project, nil
}

// Create registers a proposal for the calling faculty. Status and the
// approval flags are forced to their initial values regardless of input,
// and seats_available starts at full capacity.
func (s *ProjectService) Create(userID uint, req *CreateProjectRequest) (*models.Project, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	seats := req.Seats
	if seats == 0 {
		seats = 1
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	project := models.Project{
		FacultyID:      faculty.ID,
		Title:          req.Title,
		Abstract:       req.Abstract,
		Timeline:       req.Timeline,
		Difficulty:     difficulty,
		Status:         models.ProjectStatusPending,
		Seats:          seats,
		SeatsAvailable: seats,
		IsApproved:     false,
		IsDiscarded:    false,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// Update modifies owner-mutable fields. Changing seat capacity shifts
// seats_available by the same delta, clamped into [0, seats].
func (s *ProjectService) Update(userID, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.ownedProject(userID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Abstract != "" {
		updates["abstract"] = req.Abstract
	}
	if req.Timeline != "" {
		updates["timeline"] = req.Timeline
	}
	if req.Difficulty != "" {
		updates["difficulty"] = req.Difficulty
	}
	if req.Seats != nil && *req.Seats != project.Seats {
		newSeats := *req.Seats
		available := project.SeatsAvailable + (newSeats - project.Seats)
		if available < 0 {
			available = 0
		}
		if available > newSeats {
			available = newSeats
		}
		updates["seats"] = newSeats
		updates["seats_available"] = available
	}

	if len(updates) == 0 {
		return project, nil
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes an owned project.
func (s *ProjectService) Delete(userID, id uint) error {
	project, err := s.ownedProject(userID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(project).Error
}

// My returns the calling faculty's own projects.
func (s *ProjectService) My(userID uint) ([]ProjectItem, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var items []ProjectItem
	if err := s.db.Model(&models.Project{}).
		Select(applicationsCountSelect).
		Where("faculty_id = ?", faculty.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

// PendingReview returns same-department pending projects, excluding the
// caller's own, for an admin-approved committee member.
func (s *ProjectService) PendingReview(userID uint) ([]ProjectItem, error) {
	faculty, _, err := reviewerForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var items []ProjectItem
	if err := s.db.Model(&models.Project{}).
		Select(applicationsCountSelect).
		Joins("JOIN faculties ON faculties.id = projects.faculty_id").
		Where("faculties.department = ?", faculty.Department).
		Where("projects.status = ? AND projects.is_approved = ?", models.ProjectStatusPending, false).
		Where("projects.faculty_id <> ?", faculty.ID).
		Preload("Faculty").Preload("Faculty.User").
		Order("projects.created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	fillFacultyNames(items)

	return items, nil
}

// Approve records an approval decision and moves the project to its
// approved terminal state.
func (s *ProjectService) Approve(userID, projectID uint, req *ReviewRequest) (*models.Project, error) {
	return s.review(userID, projectID, models.ReviewDecisionApprove, req.Comment)
}

// Reject records a disapproval decision and moves the project to its
// rejected terminal state.
func (s *ProjectService) Reject(userID, projectID uint, req *ReviewRequest) (*models.Project, error) {
	return s.review(userID, projectID, models.ReviewDecisionDisapprove, req.Comment)
}

// review enforces the committee rules shared by approve and reject:
// admin-approved committee profile, faculty profile in the owner's
// department, caller is not the owner, one recorded decision per
// reviewer, and no flipping an already-decided project.
func (s *ProjectService) review(userID, projectID uint, decision, comment string) (*models.Project, error) {
	reviewer, _, err := reviewerForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.Preload("Faculty").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.Faculty == nil || project.Faculty.Department != reviewer.Department {
		return nil, response.NewForbidden("you can only review projects from your department")
	}
	if project.FacultyID == reviewer.ID {
		return nil, response.NewForbidden("you cannot review your own project")
	}

	targetStatus := models.ProjectStatusApproved
	if decision == models.ReviewDecisionDisapprove {
		targetStatus = models.ProjectStatusRejected
	}
	if project.Status != models.ProjectStatusPending && project.Status != targetStatus {
		return nil, response.NewBadRequest("project has already been reviewed")
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProjectReview
		err := tx.Where("project_id = ? AND reviewer_id = ?", project.ID, reviewer.ID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Decision != decision {
				return response.NewConflict("you have already reviewed this project")
			}
			// Same decision again: re-apply the terminal state without a
			// second review row.
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.ProjectReview{
				ProjectID:  project.ID,
				ReviewerID: reviewer.ID,
				Decision:   decision,
				Comment:    comment,
			}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		updates := map[string]interface{}{
			"status":       targetStatus,
			"is_approved":  targetStatus == models.ProjectStatusApproved,
			"is_discarded": targetStatus == models.ProjectStatusRejected,
		}
		return tx.Model(&project).Updates(updates).Error
	}); err != nil {
		return nil, err
	}

	return &project, nil
}

// Reviews lists the recorded committee decisions for a project. Visible
// to the owning faculty and to committee members of the department.
func (s *ProjectService) Reviews(userID, projectID uint) ([]models.ProjectReview, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.Preload("Faculty").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.FacultyID != faculty.ID {
		if _, _, err := reviewerForUser(s.db, userID); err != nil {
			return nil, err
		}
		if project.Faculty == nil || project.Faculty.Department != faculty.Department {
			return nil, response.NewForbidden("you can only view reviews from your department")
		}
	}

	var reviews []models.ProjectReview
	if err := s.db.Where("project_id = ?", projectID).
		Preload("Reviewer").Preload("Reviewer.User").
		Order("reviewed_at ASC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

func (s *ProjectService) ownedProject(userID, id uint) (*models.Project, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if project.FacultyID != faculty.ID {
		return nil, response.NewForbidden("you do not own this project")
	}

	return &project, nil
}

func fillFacultyNames(items []ProjectItem) {
	for i := range items {
		if items[i].Faculty != nil && items[i].Faculty.User != nil {
			items[i].FacultyName = items[i].Faculty.User.FullName()
		}
	}
}

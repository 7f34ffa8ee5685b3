package services

import (
	"errors"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

type CommitteeService struct {
	db *gorm.DB
}

func NewCommitteeService(db *gorm.DB) *CommitteeService {
	return &CommitteeService{db: db}
}

type CommitteeApplyRequest struct {
	Degree             string `json:"degree" binding:"required,max=255"`
	Specialization     string `json:"specialization" binding:"required,max=255"`
	YearsOfExperience  int    `json:"years_of_experience" binding:"required,min=0"`
	PublicationsCount  int    `json:"publications_count" binding:"omitempty,min=0"`
	ProjectsSupervised int    `json:"projects_supervised" binding:"omitempty,min=0"`
	Bio                string `json:"bio"`
	LinkedIn           string `json:"linkedin" binding:"omitempty,max=500"`
}

type UpdateCommitteeRequest struct {
	Degree             string  `json:"degree" binding:"omitempty,max=255"`
	Specialization     string  `json:"specialization" binding:"omitempty,max=255"`
	YearsOfExperience  *int    `json:"years_of_experience" binding:"omitempty,min=0"`
	PublicationsCount  *int    `json:"publications_count" binding:"omitempty,min=0"`
	ProjectsSupervised *int    `json:"projects_supervised" binding:"omitempty,min=0"`
	Bio                *string `json:"bio"`
	LinkedIn           string  `json:"linkedin" binding:"omitempty,max=500"`
}

func (s *CommitteeService) List() ([]models.Committee, error) {
	var committees []models.Committee
	if err := s.db.Preload("User").Order("created_at ASC").Find(&committees).Error; err != nil {
		return nil, err
	}
	return committees, nil
}

func (s *CommitteeService) Get(id uint) (*models.Committee, error) {
	var committee models.Committee
	if err := s.db.Preload("User").First(&committee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("committee member not found")
		}
		return nil, err
	}
	return &committee, nil
}

// Apply files a committee membership request for the calling faculty.
// The profile stays inert until an administrator approves it.
func (s *CommitteeService) Apply(userID uint, req *CommitteeApplyRequest) (*models.Committee, error) {
	if _, err := facultyForUser(s.db, userID); err != nil {
		return nil, response.NewForbidden("only faculty members can apply to the committee")
	}
	if _, err := committeeForUser(s.db, userID); err == nil {
		return nil, response.NewBadRequest("you have already applied to the committee")
	}

	committee := models.Committee{
		UserID:             userID,
		Degree:             req.Degree,
		Specialization:     req.Specialization,
		YearsOfExperience:  req.YearsOfExperience,
		PublicationsCount:  req.PublicationsCount,
		ProjectsSupervised: req.ProjectsSupervised,
		IsActiveFaculty:    true,
		ApprovedByAdmin:    false,
		Bio:                req.Bio,
		LinkedIn:           req.LinkedIn,
	}
	if err := s.db.Create(&committee).Error; err != nil {
		return nil, err
	}

	return &committee, nil
}

// Approve grants review powers to a committee profile. Admin only,
// enforced at the route level.
func (s *CommitteeService) Approve(id uint) (*models.Committee, error) {
	committee, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if committee.ApprovedByAdmin {
		return committee, nil
	}

	if err := s.db.Model(committee).Update("approved_by_admin", true).Error; err != nil {
		return nil, err
	}

	return committee, nil
}

// Update modifies the caller's own committee profile. Approval state is
// untouchable here.
func (s *CommitteeService) Update(userID, id uint, req *UpdateCommitteeRequest) (*models.Committee, error) {
	committee, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if committee.UserID != userID {
		return nil, response.NewForbidden("you can only update your own profile")
	}

	updates := make(map[string]interface{})
	if req.Degree != "" {
		updates["degree"] = req.Degree
	}
	if req.Specialization != "" {
		updates["specialization"] = req.Specialization
	}
	if req.YearsOfExperience != nil {
		updates["years_of_experience"] = *req.YearsOfExperience
	}
	if req.PublicationsCount != nil {
		updates["publications_count"] = *req.PublicationsCount
	}
	if req.ProjectsSupervised != nil {
		updates["projects_supervised"] = *req.ProjectsSupervised
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.LinkedIn != "" {
		updates["linkedin"] = req.LinkedIn
	}
	if len(updates) == 0 {
		return committee, nil
	}

	if err := s.db.Model(committee).Updates(updates).Error; err != nil {
		return nil, err
	}

	return committee, nil
}

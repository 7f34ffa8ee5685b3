package services

import (
	"errors"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

type FacultyService struct {
	db *gorm.DB
}

func NewFacultyService(db *gorm.DB) *FacultyService {
	return &FacultyService{db: db}
}

type FacultyProfileRequest struct {
	Department string `json:"department" binding:"required,max=100"`
}

type UpdateFacultyRequest struct {
	Department string `json:"department" binding:"omitempty,max=100"`
}

func (s *FacultyService) List() ([]models.Faculty, error) {
	var faculty []models.Faculty
	if err := s.db.Preload("User").Order("department ASC").Find(&faculty).Error; err != nil {
		return nil, err
	}
	return faculty, nil
}

func (s *FacultyService) Get(id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := s.db.Preload("User").First(&faculty, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("faculty not found")
		}
		return nil, err
	}
	return &faculty, nil
}

// Create attaches a faculty profile to the calling account.
func (s *FacultyService) Create(userID uint, req *FacultyProfileRequest) (*models.Faculty, error) {
	if _, err := facultyForUser(s.db, userID); err == nil {
		return nil, response.NewBadRequest("account already has a faculty profile")
	}
	if _, err := studentForUser(s.db, userID); err == nil {
		return nil, response.NewBadRequest("account already has a student profile")
	}

	faculty := models.Faculty{
		UserID:     userID,
		Department: req.Department,
	}
	if err := s.db.Create(&faculty).Error; err != nil {
		return nil, err
	}

	return &faculty, nil
}

// Update modifies the caller's own faculty profile. Changing department
// changes which committee members may review the faculty's projects.
func (s *FacultyService) Update(userID, id uint, req *UpdateFacultyRequest) (*models.Faculty, error) {
	faculty, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if faculty.UserID != userID {
		return nil, response.NewForbidden("you can only update your own profile")
	}

	if req.Department == "" {
		return faculty, nil
	}

	if err := s.db.Model(faculty).Update("department", req.Department).Error; err != nil {
		return nil, err
	}

	return faculty, nil
}

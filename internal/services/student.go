package services

import (
	"errors"
	"strings"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

type StudentProfileRequest struct {
	RollNumber string `json:"roll_number" binding:"required,max=20"`
	Course     string `json:"course"`
}

type UpdateStudentRequest struct {
	RollNumber string `json:"roll_number" binding:"omitempty,max=20"`
	Course     string `json:"course"`
}

func (s *StudentService) List() ([]models.Student, error) {
	var students []models.Student
	if err := s.db.Preload("User").Order("roll_number ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentService) Get(id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.Preload("User").First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("student not found")
		}
		return nil, err
	}
	return &student, nil
}

// Create attaches a student profile to the calling account. An account
// carries at most one role profile.
func (s *StudentService) Create(userID uint, req *StudentProfileRequest) (*models.Student, error) {
	if err := s.ensureNoProfile(userID); err != nil {
		return nil, err
	}

	student := models.Student{
		UserID:     userID,
		RollNumber: req.RollNumber,
		Course:     req.Course,
	}
	if err := s.db.Create(&student).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewBadRequest("roll number already registered")
		}
		return nil, err
	}

	return &student, nil
}

// Update modifies the caller's own student profile.
func (s *StudentService) Update(userID, id uint, req *UpdateStudentRequest) (*models.Student, error) {
	student, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if student.UserID != userID {
		return nil, response.NewForbidden("you can only update your own profile")
	}

	updates := make(map[string]interface{})
	if req.RollNumber != "" {
		updates["roll_number"] = req.RollNumber
	}
	if req.Course != "" {
		updates["course"] = req.Course
	}
	if len(updates) == 0 {
		return student, nil
	}

	if err := s.db.Model(student).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewBadRequest("roll number already registered")
		}
		return nil, err
	}

	return student, nil
}

// ensureNoProfile rejects profile creation for accounts that already
// hold a student or faculty role.
func (s *StudentService) ensureNoProfile(userID uint) error {
	if _, err := studentForUser(s.db, userID); err == nil {
		return response.NewBadRequest("account already has a student profile")
	}
	if _, err := facultyForUser(s.db, userID); err == nil {
		return response.NewBadRequest("account already has a faculty profile")
	}
	return nil
}

// isUniqueViolation recognizes duplicate-key errors across the
// supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

package services

import (
	"errors"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

// Role capability is derived from profile existence, not from a stored
// role column. These helpers are the single place that rule lives.

// studentForUser returns the student profile for an account, or a 403
// when the account holds none.
func studentForUser(db *gorm.DB, userID uint) (*models.Student, error) {
	var student models.Student
	if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewForbidden("student profile not found")
		}
		return nil, err
	}
	return &student, nil
}

// facultyForUser returns the faculty profile for an account, or a 403
// when the account holds none.
func facultyForUser(db *gorm.DB, userID uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := db.Where("user_id = ?", userID).First(&faculty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewForbidden("faculty profile not found")
		}
		return nil, err
	}
	return &faculty, nil
}

// committeeForUser returns the committee profile for an account, or a 403
// when the account holds none.
func committeeForUser(db *gorm.DB, userID uint) (*models.Committee, error) {
	var committee models.Committee
	if err := db.Where("user_id = ?", userID).First(&committee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewForbidden("only committee members can review projects")
		}
		return nil, err
	}
	return &committee, nil
}

// reviewerForUser resolves the faculty and admin-approved committee
// profiles a caller needs before reviewing projects.
func reviewerForUser(db *gorm.DB, userID uint) (*models.Faculty, *models.Committee, error) {
	committee, err := committeeForUser(db, userID)
	if err != nil {
		return nil, nil, err
	}
	if !committee.ApprovedByAdmin {
		return nil, nil, response.NewForbidden("only approved committee members can review projects")
	}

	faculty, err := facultyForUser(db, userID)
	if err != nil {
		// A committee profile without a faculty profile is a data error,
		// not a permission problem.
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return nil, nil, response.NewBadRequest("committee member must also have a faculty profile")
		}
		return nil, nil, err
	}

	return faculty, committee, nil
}

// roleForUser derives the role hint embedded in tokens.
func roleForUser(db *gorm.DB, user *models.User) string {
	if user.IsAdmin {
		return "admin"
	}
	if _, err := facultyForUser(db, user.ID); err == nil {
		return "faculty"
	}
	if _, err := studentForUser(db, user.ID); err == nil {
		return "student"
	}
	return "user"
}

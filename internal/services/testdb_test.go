package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/internal/utils"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Faculty{},
		&models.Committee{},
		&models.Project{},
		&models.ProjectReview{},
		&models.Application{},
		&models.SystemConfig{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	utils.SetJWTSecret("test-secret")
	return db
}

func createStudent(t *testing.T, db *gorm.DB, username, rollNumber string) (*models.User, *models.Student) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Password: hash,
		Email:    username + "@vitbhopal.ac.in",
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	student := &models.Student{UserID: user.ID, RollNumber: rollNumber, Course: "B.Tech CSE"}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("create student %s: %v", username, err)
	}
	return user, student
}

func createFaculty(t *testing.T, db *gorm.DB, username, department string) (*models.User, *models.Faculty) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Password: hash,
		Email:    username + "@vitbhopal.ac.in",
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	faculty := &models.Faculty{UserID: user.ID, Department: department}
	if err := db.Create(faculty).Error; err != nil {
		t.Fatalf("create faculty %s: %v", username, err)
	}
	return user, faculty
}

// createReviewer attaches an admin-approved committee profile to a
// faculty account.
func createReviewer(t *testing.T, db *gorm.DB, username, department string) (*models.User, *models.Faculty, *models.Committee) {
	t.Helper()

	user, faculty := createFaculty(t, db, username, department)
	committee := &models.Committee{
		UserID:            user.ID,
		Degree:            "PhD",
		Specialization:    "Systems",
		YearsOfExperience: 8,
		IsActiveFaculty:   true,
		ApprovedByAdmin:   true,
	}
	if err := db.Create(committee).Error; err != nil {
		t.Fatalf("create committee %s: %v", username, err)
	}
	return user, faculty, committee
}

func createApprovedProject(t *testing.T, db *gorm.DB, facultyID uint, title string, seats int) *models.Project {
	t.Helper()

	project := &models.Project{
		FacultyID:      facultyID,
		Title:          title,
		Abstract:       "abstract",
		Difficulty:     models.DifficultyMedium,
		Status:         models.ProjectStatusApproved,
		Seats:          seats,
		SeatsAvailable: seats,
		IsApproved:     true,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project %s: %v", title, err)
	}
	return project
}

func reloadProject(t *testing.T, db *gorm.DB, id uint) *models.Project {
	t.Helper()

	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		t.Fatalf("reload project %d: %v", id, err)
	}
	return &project
}

func reloadApplication(t *testing.T, db *gorm.DB, id uint) *models.Application {
	t.Helper()

	var application models.Application
	if err := db.First(&application, id).Error; err != nil {
		t.Fatalf("reload application %d: %v", id, err)
	}
	return &application
}

// wantAppError asserts err is an AppError with the given message.
func wantAppError(t *testing.T, err error, message string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %q, got nil", message)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Message != message {
		t.Fatalf("error message = %q, expected %q", appErr.Message, message)
	}
}

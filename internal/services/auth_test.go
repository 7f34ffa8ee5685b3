package services

import (
	"testing"

	"github.com/Bithika-Jain/Project-Exhibition/internal/config"
	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db,
		&config.LDAPConfig{Enabled: false},
		&config.JWTConfig{Secret: "test-secret", ExpireHour: 24},
	)
}

func TestSignupStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	user, err := svc.Signup(&SignupRequest{
		Username:   "asha",
		Password:   "password123",
		Role:       "student",
		Email:      "asha@vitbhopal.ac.in",
		FirstName:  "Asha",
		LastName:   "Verma",
		RollNumber: "21BCE0001",
		Course:     "B.Tech CSE",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Password == "password123" {
		t.Error("password stored in plaintext")
	}

	var student models.Student
	if err := db.Where("user_id = ?", user.ID).First(&student).Error; err != nil {
		t.Fatalf("student profile missing: %v", err)
	}
	if student.RollNumber != "21BCE0001" {
		t.Errorf("roll number = %q", student.RollNumber)
	}
}

func TestSignupFacultyDefaultDepartment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	user, err := svc.Signup(&SignupRequest{
		Username: "prof_rao",
		Password: "password123",
		Role:     "faculty",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	var faculty models.Faculty
	if err := db.Where("user_id = ?", user.ID).First(&faculty).Error; err != nil {
		t.Fatalf("faculty profile missing: %v", err)
	}
	if faculty.Department != "General" {
		t.Errorf("department = %q, expected General default", faculty.Department)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	req := &SignupRequest{Username: "asha", Password: "password123", Role: "student", RollNumber: "21BCE0001"}
	if _, err := svc.Signup(req); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := svc.Signup(&SignupRequest{Username: "asha", Password: "other456", Role: "student", RollNumber: "21BCE0002"})
	wantAppError(t, err, "username already taken")
}

func TestSignupDuplicateRollNumberLeavesNoOrphanUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	if _, err := svc.Signup(&SignupRequest{Username: "asha", Password: "password123", Role: "student", RollNumber: "21BCE0001"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := svc.Signup(&SignupRequest{Username: "vikram", Password: "password123", Role: "student", RollNumber: "21BCE0001"})
	wantAppError(t, err, "roll number already registered")

	// The transaction must roll back the account too
	var count int64
	db.Model(&models.User{}).Where("username = ?", "vikram").Count(&count)
	if count != 0 {
		t.Fatal("orphan user left behind after failed profile creation")
	}
}

func TestLoginLocal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	if _, err := svc.Signup(&SignupRequest{Username: "asha", Password: "password123", Role: "student", RollNumber: "21BCE0001"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	resp, err := svc.Login(&LoginRequest{Username: "asha", Password: "password123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("login returned empty token")
	}
	if resp.Role != "student" {
		t.Errorf("role = %q, expected student", resp.Role)
	}

	if _, err := svc.Login(&LoginRequest{Username: "asha", Password: "wrong"}); err == nil {
		t.Error("login with wrong password should fail")
	}
	if _, err := svc.Login(&LoginRequest{Username: "ghost", Password: "password123"}); err == nil {
		t.Error("login with unknown username should fail")
	}
}

func TestGetCurrentUserIncludesProfiles(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	reviewerUser, _, _ := createReviewer(t, db, "prof_sharma", "SCOPE")

	current, err := svc.GetCurrentUser(reviewerUser.ID)
	if err != nil {
		t.Fatalf("get current user failed: %v", err)
	}
	if current.Faculty == nil {
		t.Error("faculty profile missing from current user")
	}
	if current.Committee == nil {
		t.Error("committee profile missing from current user")
	}
	if current.Role != "faculty" {
		t.Errorf("role = %q, expected faculty", current.Role)
	}
}

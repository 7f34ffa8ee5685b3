package models

import "time"

// Application states
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusSelected    = "selected"
	ApplicationStatusRejected    = "rejected"
)

// MaxApplicationsPerStudent caps concurrent applications per student.
const MaxApplicationsPerStudent = 3

// Application is a student's request for a seat on an approved project.
// At most one application per (student, project) pair, and at most one
// selected application per student across all projects.
type Application struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	StudentID uint     `gorm:"not null;uniqueIndex:idx_student_project" json:"student_id"`
	Student   *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	ProjectID uint     `gorm:"not null;uniqueIndex:idx_student_project" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	// 1 is highest; student-declared ranking among their own applications.
	Priority  int       `gorm:"default:1" json:"priority"`
	CGPA      *float64  `json:"cgpa"` // snapshot supplied at application time
	Skills    string    `gorm:"type:text" json:"skills"`
	Status    string    `gorm:"size:20;default:pending" json:"status"` // pending, shortlisted, selected, rejected
	AppliedAt time.Time `gorm:"autoCreateTime" json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

// HoldsSeat reports whether the application currently occupies a project
// seat. Seats are consumed at creation and released on faculty reject or
// student withdrawal; force-rejection during select does not release them.
func (a *Application) HoldsSeat() bool {
	return a.Status == ApplicationStatusPending ||
		a.Status == ApplicationStatusShortlisted ||
		a.Status == ApplicationStatusSelected
}

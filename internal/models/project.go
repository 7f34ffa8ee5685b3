package models

import (
	"time"

	"gorm.io/gorm"
)

// Project difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Project approval states
const (
	ProjectStatusPending  = "pending"
	ProjectStatusApproved = "approved"
	ProjectStatusRejected = "rejected"
)

// Project is a proposal owned by a faculty member. SeatsAvailable is
// system-managed: decremented when a student applies, restored when the
// faculty rejects or the student withdraws. Invariant:
// 0 <= seats_available <= seats.
type Project struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	FacultyID      uint           `gorm:"index;not null" json:"faculty_id"`
	Faculty        *Faculty       `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Abstract       string         `gorm:"type:text" json:"abstract"`
	Timeline       string         `gorm:"size:255" json:"timeline"`
	Difficulty     string         `gorm:"size:20;default:medium" json:"difficulty"` // easy, medium, hard
	Status         string         `gorm:"size:20;default:pending" json:"status"`    // pending, approved, rejected
	Seats          int            `gorm:"default:1" json:"seats"`
	SeatsAvailable int            `gorm:"default:1" json:"seats_available"`
	IsApproved     bool           `gorm:"default:false" json:"is_approved"` // true only after committee approval
	IsDiscarded    bool           `gorm:"default:false" json:"is_discarded"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

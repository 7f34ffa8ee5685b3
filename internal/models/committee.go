package models

import (
	"time"

	"gorm.io/gorm"
)

// Committee is the review-board profile. It may only be attached to an
// account that already holds a Faculty profile, and its review powers are
// inert until an administrator sets ApprovedByAdmin.
type Committee struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User               *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Degree             string         `gorm:"size:255;not null" json:"degree"`         // e.g. PhD, MTech
	Specialization     string         `gorm:"size:255;not null" json:"specialization"` // area of expertise
	YearsOfExperience  int            `gorm:"not null" json:"years_of_experience"`
	PublicationsCount  int            `gorm:"default:0" json:"publications_count"`
	ProjectsSupervised int            `gorm:"default:0" json:"projects_supervised"`
	IsActiveFaculty    bool           `gorm:"default:true" json:"is_active_faculty"`
	ApprovedByAdmin    bool           `gorm:"default:false" json:"approved_by_admin"`
	Bio                string         `gorm:"type:text" json:"bio"`
	LinkedIn           string         `gorm:"size:500" json:"linkedin"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Committee) TableName() string { return "committees" }

package models

import (
	"time"

	"gorm.io/gorm"
)

// Faculty is the faculty role profile, attached 1:1 to a User.
// Department scopes committee review: only same-department committee
// members may decide on a faculty's projects.
type Faculty struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department string         `gorm:"size:100;not null" json:"department"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Faculty) TableName() string { return "faculties" }

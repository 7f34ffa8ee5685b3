package models

import (
	"time"

	"gorm.io/gorm"
)

// Student is the student role profile, attached 1:1 to a User.
type Student struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RollNumber string         `gorm:"uniqueIndex;size:20;not null" json:"roll_number"`
	Course     string         `gorm:"size:100" json:"course"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string { return "students" }

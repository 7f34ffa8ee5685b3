package models

import "time"

// Review decisions
const (
	ReviewDecisionApprove    = "approve"
	ReviewDecisionDisapprove = "disapprove"
)

// ProjectReview records a single committee member's decision on a project.
// At most one review per (project, reviewer) pair.
type ProjectReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"not null;uniqueIndex:idx_project_reviewer" json:"project_id"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ReviewerID uint      `gorm:"not null;uniqueIndex:idx_project_reviewer" json:"reviewer_id"` // Faculty ID
	Reviewer   *Faculty  `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Decision   string    `gorm:"size:12;not null" json:"decision"` // approve, disapprove
	Comment    string    `gorm:"type:text" json:"comment"`
	ReviewedAt time.Time `gorm:"autoCreateTime" json:"reviewed_at"`
}

func (ProjectReview) TableName() string { return "project_reviews" }

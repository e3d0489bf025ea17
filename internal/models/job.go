package models

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is immutable after creation.
type JobPosting struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Company      string    `gorm:"type:text;not null" json:"company"`
	Location     string    `gorm:"type:text;not null" json:"location"`
	Description  string    `gorm:"type:text" json:"description"`
	Requirements string    `gorm:"type:text" json:"requirements"`
	PostedAt     time.Time `gorm:"type:timestamp;default:now()" json:"posted_at"`
}

func (j *JobPosting) TableName() string {
	return "jobs"
}

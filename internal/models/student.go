package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is a college roster entry maintained alongside uploaded resumes.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	College   string    `gorm:"type:text;not null" json:"college"`
	Degree    string    `gorm:"type:text;not null" json:"degree"`
	Year      string    `gorm:"type:text" json:"year"`
	Phone     string    `gorm:"type:text" json:"phone"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (s *Student) TableName() string {
	return "college_students"
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactResolved ContactStatus = "resolved"
)

// AdminContact is a message sent to the site administrator.
type AdminContact struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name      string        `gorm:"type:text;not null" json:"name"`
	Email     string        `gorm:"type:text;not null" json:"email"`
	Phone     string        `gorm:"type:text" json:"phone"`
	Message   string        `gorm:"type:text" json:"message"`
	Status    ContactStatus `gorm:"type:text;default:'pending'" json:"status"`
	CreatedAt time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (c *AdminContact) TableName() string {
	return "admin_contacts"
}

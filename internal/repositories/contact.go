package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"resumerag/matcher/internal/models"
)

type ContactRepository interface {
	Create(contact *models.AdminContact) error
	FindAll() ([]models.AdminContact, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create implements ContactRepository.
func (r *contactRepository) Create(contact *models.AdminContact) error {
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create admin contact: %w", err)
	}
	return nil
}

// FindAll implements ContactRepository.
func (r *contactRepository) FindAll() ([]models.AdminContact, error) {
	var contacts []models.AdminContact
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list admin contacts: %w", err)
	}
	return contacts, nil
}

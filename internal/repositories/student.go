package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"resumerag/matcher/internal/models"
)

type StudentRepository interface {
	Create(student *models.Student) error
	FindAll() ([]models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create implements StudentRepository.
func (r *studentRepository) Create(student *models.Student) error {
	if err := r.db.Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// FindAll implements StudentRepository.
func (r *studentRepository) FindAll() ([]models.Student, error) {
	var students []models.Student
	if err := r.db.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

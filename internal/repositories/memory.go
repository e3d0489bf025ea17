package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"resumerag/matcher/internal/models"
)

// In-memory repository implementations, used when no database is
// configured and by tests. Rows are append-only, matching the engine's
// immutability contract; listings return newest first like the gorm
// implementations.

type memoryResumeRepository struct {
	mu      sync.RWMutex
	resumes []models.Resume
}

func NewMemoryResumeRepository() ResumeRepository {
	return &memoryResumeRepository{}
}

func (r *memoryResumeRepository) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.resumes {
		if existing.ID == resume.ID {
			return fmt.Errorf("resume %s already exists", resume.ID)
		}
	}
	r.resumes = append(r.resumes, *resume)
	return nil
}

func (r *memoryResumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.resumes {
		if r.resumes[i].ID == id {
			resume := r.resumes[i]
			return &resume, nil
		}
	}
	return nil, fmt.Errorf("resume not found: %s", id)
}

func (r *memoryResumeRepository) FindAll() ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reversed(r.resumes), nil
}

func (r *memoryResumeRepository) FindWithCollege() ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Resume
	for _, resume := range reversed(r.resumes) {
		if resume.College != "" {
			out = append(out, resume)
		}
	}
	return out, nil
}

type memoryJobRepository struct {
	mu   sync.RWMutex
	jobs []models.JobPosting
}

func NewMemoryJobRepository() JobRepository {
	return &memoryJobRepository{}
}

func (r *memoryJobRepository) Create(job *models.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.jobs {
		if existing.ID == job.ID {
			return fmt.Errorf("job %s already exists", job.ID)
		}
	}
	r.jobs = append(r.jobs, *job)
	return nil
}

func (r *memoryJobRepository) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.jobs {
		if r.jobs[i].ID == id {
			job := r.jobs[i]
			return &job, nil
		}
	}
	return nil, fmt.Errorf("job not found: %s", id)
}

func (r *memoryJobRepository) FindAll() ([]models.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reversed(r.jobs), nil
}

type memoryStudentRepository struct {
	mu       sync.RWMutex
	students []models.Student
}

func NewMemoryStudentRepository() StudentRepository {
	return &memoryStudentRepository{}
}

func (r *memoryStudentRepository) Create(student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = append(r.students, *student)
	return nil
}

func (r *memoryStudentRepository) FindAll() ([]models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reversed(r.students), nil
}

type memoryContactRepository struct {
	mu       sync.RWMutex
	contacts []models.AdminContact
}

func NewMemoryContactRepository() ContactRepository {
	return &memoryContactRepository{}
}

func (r *memoryContactRepository) Create(contact *models.AdminContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, *contact)
	return nil
}

func (r *memoryContactRepository) FindAll() ([]models.AdminContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reversed(r.contacts), nil
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

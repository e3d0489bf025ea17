package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SkillList is a set of canonical skill terms stored as a JSON array column.
type SkillList []string

func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	return string(data), nil
}

func (s *SkillList) Scan(value interface{}) error {
	if value == nil {
		*s = SkillList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported skills column type: %T", value)
	}

	if len(data) == 0 {
		*s = SkillList{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Resume is a candidate profile extracted from one uploaded file.
// Rows are immutable after creation; a re-upload creates a new row.
type Resume struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Filename   string    `gorm:"type:text" json:"filename"`
	Name       string    `gorm:"type:text" json:"name"`
	Email      string    `gorm:"type:text" json:"email"`
	Phone      string    `gorm:"type:text" json:"phone"`
	College    string    `gorm:"type:text" json:"college"`
	Degree     string    `gorm:"type:text" json:"degree"`
	Skills     SkillList `gorm:"type:text" json:"skills"`
	Experience string    `gorm:"type:text" json:"experience"`
	Education  string    `gorm:"type:text" json:"education"`
	RawText    string    `gorm:"type:text" json:"-"`
	UploadedAt time.Time `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillCategory string

const (
	SkillCategoryFrontend SkillCategory = "frontend"
	SkillCategoryBackend  SkillCategory = "backend"
	SkillCategoryDatabase SkillCategory = "database"
	SkillCategoryDevops   SkillCategory = "devops"
	SkillCategoryOther    SkillCategory = "other"
)

// SkillCategories lists the accepted categories in display order
var SkillCategories = []SkillCategory{
	SkillCategoryFrontend,
	SkillCategoryBackend,
	SkillCategoryDatabase,
	SkillCategoryDevops,
	SkillCategoryOther,
}

// Skill represents a single technology with a self-assessed proficiency
type Skill struct {
	ID          uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string        `json:"name" db:"name" gorm:"type:text;not null"`
	Category    SkillCategory `json:"category" db:"category" gorm:"type:text;not null;index:idx_skills_category"`
	Icon        string        `json:"icon" db:"icon" gorm:"type:text;not null"`
	Proficiency int           `json:"proficiency" db:"proficiency" gorm:"type:integer;not null"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at" gorm:"not null;index:idx_skills_created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

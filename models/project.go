package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a portfolio project card
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Image        *string                     `json:"image" db:"image" gorm:"type:text"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies" gorm:"not null"`
	GithubURL    string                      `json:"githubUrl" db:"github_url" gorm:"type:text;not null"`
	LiveURL      string                      `json:"liveUrl" db:"live_url" gorm:"type:text;not null"`
	Category     string                      `json:"category" db:"category" gorm:"type:text;not null"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"not null;index:idx_projects_created_at"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Experience represents one position in the work history.
// Description holds the list of responsibilities for the role.
type Experience struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Company      string                      `json:"company" db:"company" gorm:"type:text;not null"`
	Location     string                      `json:"location" db:"location" gorm:"type:text;not null"`
	StartDate    time.Time                   `json:"startDate" db:"start_date" gorm:"not null;index:idx_experiences_start_date"`
	EndDate      *time.Time                  `json:"endDate" db:"end_date"`
	Current      bool                        `json:"current" db:"current" gorm:"not null"`
	Description  datatypes.JSONSlice[string] `json:"description" db:"description" gorm:"not null"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies" gorm:"not null"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

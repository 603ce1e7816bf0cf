package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

// The methods below let Database serve as the read side of the chat context.

func (d Database) ListExperiences(ctx context.Context) ([]*models.Experience, error) {
	return d.experienceRepo.FindAll(ctx)
}

func (d Database) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return d.projectRepo.FindAll(ctx)
}

func (d Database) ListSkillsByCategory(ctx context.Context) ([]*models.Skill, error) {
	return d.skillRepo.FindAllByCategory(ctx)
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

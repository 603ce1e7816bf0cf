package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills, newest first
func (r *SkillRepo) FindAll(ctx context.Context) ([]*models.Skill, error) {
	skills := []*models.Skill{}
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&skills).Error
	return skills, err
}

// FindAllByCategory returns all skills ordered by category name
func (r *SkillRepo) FindAllByCategory(ctx context.Context) ([]*models.Skill, error) {
	skills := []*models.Skill{}
	err := r.db.WithContext(ctx).Order("category asc").Order("created_at asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *SkillRepo) Update(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Skill{}, id)
}

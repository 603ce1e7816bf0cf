package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

// FindAll returns the work history, most recent start date first
func (r *ExperienceRepo) FindAll(ctx context.Context) ([]*models.Experience, error) {
	experiences := []*models.Experience{}
	err := r.db.WithContext(ctx).Order("start_date desc").Find(&experiences).Error
	return experiences, err
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	var experience models.Experience
	err := r.db.WithContext(ctx).First(&experience, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *ExperienceRepo) Add(ctx context.Context, experience *models.Experience) error {
	return r.db.WithContext(ctx).Create(experience).Error
}

func (r *ExperienceRepo) Update(ctx context.Context, experience *models.Experience) error {
	return r.db.WithContext(ctx).Save(experience).Error
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Experience{}, id)
}

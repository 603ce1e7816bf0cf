package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// FindAll returns all contact messages, newest first
func (r *MessageRepo) FindAll(ctx context.Context) ([]*models.Message, error) {
	messages := []*models.Message{}
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&messages).Error
	return messages, err
}

func (r *MessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepo) Add(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// UpdateStatus sets the status of a message and returns the updated record
func (r *MessageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatus) (*models.Message, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Message{}, id)
}

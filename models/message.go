package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageStatus string

const (
	MessageStatusUnread  MessageStatus = "unread"
	MessageStatusRead    MessageStatus = "read"
	MessageStatusReplied MessageStatus = "replied"
)

// Message is a contact-form submission
type Message struct {
	ID        uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string        `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string        `json:"email" db:"email" gorm:"type:text;not null"`
	Message   string        `json:"message" db:"message" gorm:"type:text;not null"`
	Status    MessageStatus `json:"status" db:"status" gorm:"type:text;not null;index:idx_messages_status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at" gorm:"not null;index:idx_messages_created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MessageStatusUnread
	}
	return nil
}

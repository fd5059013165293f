package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a direct message between two users. Messages are
// immutable once created; deletion is the only mutation.
type Message struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	SenderID    string `gorm:"type:uuid;not null;index"`
	RecipientID string `gorm:"type:uuid;not null;index"`
	Content     string `gorm:"not null"`
	CreatedAt   time.Time

	Sender    User `gorm:"foreignKey:SenderID;references:ID"`
	Recipient User `gorm:"foreignKey:RecipientID;references:ID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

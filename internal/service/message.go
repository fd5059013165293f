package service

import (
	"context"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"gorm.io/gorm"
)

// MessageService stores direct messages. Messages are immutable once created
// except for deletion; no delivery or read receipts.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send appends a timestamped message. Empty content is rejected.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if content == "" {
		return nil, apperr.BadValues("message content must not be empty")
	}

	message := models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Transcript returns all messages in either direction between two users,
// ascending by timestamp: a chat transcript.
func (s *MessageService) Transcript(ctx context.Context, a, b string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("created_at asc").
		Preload("Sender").Preload("Recipient").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Inbox returns all messages addressed to the user, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes a message by record id. Authorization, if any, is the
// composition layer's concern.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("message not found")
	}
	return nil
}

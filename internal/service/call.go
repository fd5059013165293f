package service

import (
	"context"
	"errors"
	"time"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"gorm.io/gorm"
)

// CallService runs the call-session state machine:
//
//	idle (no record) → pending → active → ended (terminal, kept for history)
//
// Status is an explicit column and every transition is a guarded single-row
// update on the previous state, so racing transitions resolve to exactly one
// winner. A user can be in at most one un-ended call at a time; Start rejects
// when either party is already mid-call.
type CallService struct {
	db *gorm.DB
}

func NewCallService(db *gorm.DB) *CallService {
	return &CallService{db: db}
}

// Start creates a pending call from caller to recipient. The friendship check
// belongs to the caller's composition layer; this layer enforces no-self-call
// and the one-call-per-user overlap rule.
func (s *CallService) Start(ctx context.Context, callerID, recipientID string) (*models.Call, error) {
	if callerID == recipientID {
		return nil, apperr.BadValues("cannot call yourself")
	}

	var busy int64
	err := s.db.WithContext(ctx).Model(&models.Call{}).
		Where("status <> ?", models.CallEnded).
		Where("caller_id IN (?, ?) OR recipient_id IN (?, ?)", callerID, recipientID, callerID, recipientID).
		Count(&busy).Error
	if err != nil {
		return nil, err
	}
	if busy > 0 {
		return nil, apperr.AlreadyExists("one of the parties is already in a call")
	}

	call := models.Call{
		CallerID:    callerID,
		RecipientID: recipientID,
		Status:      models.CallPending,
		StartedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&call).Error; err != nil {
		return nil, err
	}
	return &call, nil
}

// Accept transitions the most recent pending call addressed to the recipient
// into the active state. The update is guarded on the pending status, so a
// call can be accepted at most once.
func (s *CallService) Accept(ctx context.Context, recipientID string) (*models.Call, error) {
	var call models.Call
	err := s.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, models.CallPending).
		Order("started_at desc").
		First(&call).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no incoming call to accept")
	}
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&models.Call{}).
		Where("id = ? AND status = ?", call.ID, models.CallPending).
		Update("status", models.CallActive)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race against another accept or an end.
		return nil, apperr.NotFound("no incoming call to accept")
	}

	call.Status = models.CallActive
	return &call, nil
}

// End terminates a call. Ending an already-ended call fails rather than
// silently succeeding; ended records stay around as history.
func (s *CallService) End(ctx context.Context, callID string) error {
	var call models.Call
	err := s.db.WithContext(ctx).Where("id = ?", callID).First(&call).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("call not found")
	}
	if err != nil {
		return err
	}

	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.Call{}).
		Where("id = ? AND status <> ?", callID, models.CallEnded).
		Updates(map[string]any{"status": models.CallEnded, "ended_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.AlreadyExists("call has already ended")
	}
	return nil
}

// ActiveFor returns the single un-ended call involving the user, or nil when
// there is none.
func (s *CallService) ActiveFor(ctx context.Context, userID string) (*models.Call, error) {
	var call models.Call
	err := s.db.WithContext(ctx).
		Where("(caller_id = ? OR recipient_id = ?) AND status <> ?", userID, userID, models.CallEnded).
		Order("started_at desc").
		Preload("Caller").Preload("Recipient").
		First(&call).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &call, nil
}

package service

import (
	"context"
	"errors"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"gorm.io/gorm"
)

// FriendshipService runs the friend-request state machine:
//
//	no-relation → pending(from→to) → {friends | no-relation}
//
// A relationship is one UserRelation row for its whole lifecycle. Accepting
// flips the status in place with a guarded single-row update, so two
// concurrent accepts cannot both succeed.
type FriendshipService struct {
	db *gorm.DB
}

func NewFriendshipService(db *gorm.DB) *FriendshipService {
	return &FriendshipService{db: db}
}

// SendRequest creates a pending request from one user to another. Fails when
// the sender targets themselves or any relation already exists in either
// direction, pending or accepted.
func (s *FriendshipService) SendRequest(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return apperr.BadValues("cannot send a friend request to yourself")
	}

	existing, err := s.relationBetween(ctx, fromID, toID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Status == models.StatusAccepted {
			return apperr.AlreadyExists("users are already friends")
		}
		return apperr.AlreadyExists("a friend request between these users is already pending")
	}

	relation := models.UserRelation{
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     models.StatusPending,
	}
	return s.db.WithContext(ctx).Create(&relation).Error
}

// CancelRequest withdraws a pending outgoing request.
func (s *FriendshipService) CancelRequest(ctx context.Context, fromID, toID string) error {
	result := s.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromID, toID, models.StatusPending).
		Delete(&models.UserRelation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no pending request to cancel")
	}
	return nil
}

// AcceptRequest turns a pending request into a friendship. Only the addressed
// party may accept. The status flip is guarded on the pending state, so a
// request can be accepted at most once.
func (s *FriendshipService) AcceptRequest(ctx context.Context, fromID, toID string) error {
	result := s.db.WithContext(ctx).Model(&models.UserRelation{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromID, toID, models.StatusPending).
		Update("status", models.StatusAccepted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no pending request to accept")
	}
	return nil
}

// RejectRequest deletes a pending request addressed to the rejecting user
// without creating a friendship.
func (s *FriendshipService) RejectRequest(ctx context.Context, fromID, toID string) error {
	result := s.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromID, toID, models.StatusPending).
		Delete(&models.UserRelation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no pending request to reject")
	}
	return nil
}

// RemoveFriend deletes the friendship between two users; either party may do
// this.
func (s *FriendshipService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	result := s.db.WithContext(ctx).
		Where("((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND status = ?",
			userID, friendID, friendID, userID, models.StatusAccepted).
		Delete(&models.UserRelation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("users are not friends")
	}
	return nil
}

// AreFriends reports whether an accepted relation exists in either direction.
func (s *FriendshipService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.UserRelation{}).
		Where("((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND status = ?",
			a, b, b, a, models.StatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AssertFriends is the authorization gate for every peer-directed action
// (messaging, moods, calling). The error names both parties.
func (s *FriendshipService) AssertFriends(ctx context.Context, a, b, nameA, nameB string) error {
	friends, err := s.AreFriends(ctx, a, b)
	if err != nil {
		return err
	}
	if !friends {
		return apperr.NotAllowed("%s and %s are not friends", nameA, nameB)
	}
	return nil
}

// Friends returns the users on the other end of every accepted relation.
func (s *FriendshipService) Friends(ctx context.Context, userID string) ([]models.User, error) {
	var relations []models.UserRelation
	err := s.db.WithContext(ctx).
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", userID, userID, models.StatusAccepted).
		Preload("FromUser").Preload("ToUser").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}

	var friends []models.User
	for _, r := range relations {
		if r.FromUserID == userID {
			friends = append(friends, r.ToUser)
		} else {
			friends = append(friends, r.FromUser)
		}
	}
	return friends, nil
}

// Requests returns the user's pending requests, incoming and outgoing.
func (s *FriendshipService) Requests(ctx context.Context, userID string) (incoming, outgoing []models.UserRelation, err error) {
	err = s.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, models.StatusPending).
		Preload("FromUser").
		Find(&incoming).Error
	if err != nil {
		return nil, nil, err
	}

	err = s.db.WithContext(ctx).
		Where("from_user_id = ? AND status = ?", userID, models.StatusPending).
		Preload("ToUser").
		Find(&outgoing).Error
	if err != nil {
		return nil, nil, err
	}
	return incoming, outgoing, nil
}

// relationBetween fetches the relation row in either direction, nil when none
// exists.
func (s *FriendshipService) relationBetween(ctx context.Context, a, b string) (*models.UserRelation, error) {
	var relation models.UserRelation
	err := s.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		First(&relation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

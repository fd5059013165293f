package service

import (
	"context"
	"errors"
	"unicode"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"gorm.io/gorm"
)

// MoodService stores the one emoji each user currently shares with a specific
// friend. The value must be a single emoji; free text is rejected.
type MoodService struct {
	db *gorm.DB
}

func NewMoodService(db *gorm.DB) *MoodService {
	return &MoodService{db: db}
}

// Set stores or overwrites the mood for the directed (owner, friend) pair.
// Re-setting updates the existing row, it never creates a duplicate.
func (s *MoodService) Set(ctx context.Context, ownerID, friendID, value string) error {
	if !isSingleEmoji(value) {
		return apperr.BadValues("mood must be a single emoji")
	}

	mood := models.Mood{OwnerID: ownerID, FriendID: friendID}
	return s.db.WithContext(ctx).
		Where(models.Mood{OwnerID: ownerID, FriendID: friendID}).
		Assign(models.Mood{Value: value}).
		FirstOrCreate(&mood).Error
}

// Both returns the moods in both directions between two users, nil when a
// side has not set one. Absence is never an error here.
func (s *MoodService) Both(ctx context.Context, userID, friendID string) (mine, theirs *string, err error) {
	mine, err = s.get(ctx, userID, friendID)
	if err != nil {
		return nil, nil, err
	}
	theirs, err = s.get(ctx, friendID, userID)
	if err != nil {
		return nil, nil, err
	}
	return mine, theirs, nil
}

// Remove deletes the mood the owner shares with the friend.
func (s *MoodService) Remove(ctx context.Context, ownerID, friendID string) error {
	result := s.db.WithContext(ctx).
		Where("owner_id = ? AND friend_id = ?", ownerID, friendID).
		Delete(&models.Mood{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no mood to remove")
	}
	return nil
}

func (s *MoodService) get(ctx context.Context, ownerID, friendID string) (*string, error) {
	var mood models.Mood
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND friend_id = ?", ownerID, friendID).
		First(&mood).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mood.Value, nil
}

// isSingleEmoji accepts one emoji, allowing multi-rune sequences built from
// variation selectors, skin-tone modifiers, and zero-width joiners.
func isSingleEmoji(value string) bool {
	runes := []rune(value)
	if len(runes) == 0 || len(runes) > 8 {
		return false
	}

	base := 0
	for _, r := range runes {
		switch {
		case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		case r >= 0x1F3FB && r <= 0x1F3FF: // skin-tone modifiers
		case isEmojiRune(r):
			base++
		default:
			return false
		}
	}
	return base >= 1
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // symbols, pictographs, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	default:
		return unicode.Is(unicode.So, r)
	}
}

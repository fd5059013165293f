package service

import (
	"context"
	"errors"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService owns accounts: registration, credential checks, and profile
// mutations. Account deletion removes only the account row; related data is
// not cascaded.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates an account with a unique username and a bcrypt-hashed
// password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.BadValues("username and password must not be empty")
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, apperr.AlreadyExists("username %q is already taken", username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials for %q", username)
	}
	return user, nil
}

// ByUsername resolves a username to its account or NotFound.
func (s *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %q not found", username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByID resolves a user ID to its account or NotFound.
func (s *UserService) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsernames returns every registered username.
func (s *UserService) ListUsernames(ctx context.Context) ([]string, error) {
	var usernames []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Order("username asc").
		Pluck("username", &usernames).Error
	if err != nil {
		return nil, err
	}
	return usernames, nil
}

// UpdateUsername renames the account, keeping usernames unique.
func (s *UserService) UpdateUsername(ctx context.Context, userID, username string) error {
	if username == "" {
		return apperr.BadValues("username must not be empty")
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ? AND id <> ?", username, userID).First(&existing).Error
	if err == nil {
		return apperr.AlreadyExists("username %q is already taken", username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("username", username)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// UpdatePassword replaces the account credential.
func (s *UserService) UpdatePassword(ctx context.Context, userID, password string) error {
	if password == "" {
		return apperr.BadValues("password must not be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", string(hashed))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// Delete removes the account. Posts, messages, moods and calls referencing it
// are intentionally left in place.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

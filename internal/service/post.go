package service

import (
	"context"
	"errors"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"gorm.io/gorm"
)

// PostService stores author-owned content. Mutation and deletion require the
// caller to be the author.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create stores a new post for the author.
func (s *PostService) Create(ctx context.Context, authorID, content string, backgroundColor *string) (*models.Post, error) {
	if content == "" {
		return nil, apperr.BadValues("post content must not be empty")
	}

	post := models.Post{
		AuthorID:        authorID,
		Content:         content,
		BackgroundColor: backgroundColor,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts newest first, optionally filtered by author, with total
// count for pagination.
func (s *PostService) List(ctx context.Context, authorID string, page, limit int) ([]models.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	offset := (page - 1) * limit
	err := query.Order("created_at desc").
		Offset(offset).Limit(limit).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update changes a post's content or display options; only the author may.
func (s *PostService) Update(ctx context.Context, postID, authorID, content string, backgroundColor *string) (*models.Post, error) {
	if content == "" {
		return nil, apperr.BadValues("post content must not be empty")
	}

	post, err := s.byID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, apperr.NotAllowed("only the author may edit this post")
	}

	post.Content = content
	post.BackgroundColor = backgroundColor
	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post; only the author may.
func (s *PostService) Delete(ctx context.Context, postID, authorID string) error {
	post, err := s.byID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != authorID {
		return apperr.NotAllowed("only the author may delete this post")
	}
	return s.db.WithContext(ctx).Delete(post).Error
}

func (s *PostService) byID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

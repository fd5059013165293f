package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a piece of content owned exclusively by its author.
// BackgroundColor is the only display option posts currently carry.
type Post struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	AuthorID        string  `gorm:"type:uuid;not null;index"`
	Content         string  `gorm:"not null"`
	BackgroundColor *string `gorm:"size:32"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Author User `gorm:"foreignKey:AuthorID;references:ID"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

package models

import "time"

// Mood holds the one emoji a user is currently sharing with a specific friend.
// Keyed by the directed (owner, friend) pair: re-setting overwrites, it never
// duplicates.
type Mood struct {
	OwnerID   string `gorm:"type:uuid;primaryKey"`
	FriendID  string `gorm:"type:uuid;primaryKey"`
	Value     string `gorm:"size:32;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CallStatus is the explicit lifecycle state of a call. The status column is
// the single source of truth; EndedAt is informational.
type CallStatus string

const (
	// CallPending means the caller is ringing and the recipient has not answered.
	CallPending CallStatus = "pending"

	// CallActive means the recipient accepted and the call is in progress.
	CallActive CallStatus = "active"

	// CallEnded is terminal. Ended calls are retained for history.
	CallEnded CallStatus = "ended"
)

// Call represents a two-party call session between friends.
type Call struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	CallerID    string     `gorm:"type:uuid;not null;index"`
	RecipientID string     `gorm:"type:uuid;not null;index"`
	Status      CallStatus `gorm:"type:varchar(16);not null;index"`
	StartedAt   time.Time  `gorm:"not null"`
	EndedAt     *time.Time

	Caller    User `gorm:"foreignKey:CallerID;references:ID"`
	Recipient User `gorm:"foreignKey:RecipientID;references:ID"`
}

func (c *Call) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a per-user message. Created by admins or by the low-stock
// trigger; mutated only to flip IsRead; deleted explicitly. ItemID links
// low-stock notifications to their item so they can be removed when the item
// is deleted.
type Notification struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Message         string    `gorm:"not null"`
	IsRead          bool      `gorm:"not null;default:false"`
	ItemID          *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time
}

func (Notification) TableName() string { return "notifications" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// Location is a physical place an item is kept. Same lifecycle as Category,
// distinct namespace.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Location) TableName() string { return "locations" }

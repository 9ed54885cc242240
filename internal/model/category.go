package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies items. Names are unique; deletion is blocked while any
// item still references the category.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name singular-free and explicit.
func (Category) TableName() string { return "categories" }

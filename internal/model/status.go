package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the operator-assigned administrative label of an item
// (Disponible / Mantenimiento / No disponible). It is independent of the
// derived stock status computed from the stock count; the two are never
// merged.
type Status struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Status) TableName() string { return "statuses" }

// DefaultStatusNames are seeded at startup so items always have labels to
// reference.
var DefaultStatusNames = []string{"Disponible", "Mantenimiento", "No disponible"}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is a trackable inventory unit. Stock is mutated exclusively through
// the stock ledger (see service.StockService) so that every change leaves a
// history entry; metadata updates never touch it.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StatusID    uuid.UUID `gorm:"type:uuid;not null;index"`
	// Stock must never go negative; MinStock is the low-stock threshold.
	Stock             int        `gorm:"not null;default:0"`
	MinStock          int        `gorm:"not null;default:1"`
	ResponsibleUserID *uuid.UUID `gorm:"type:uuid;index"`
	QRCode            *string
	Image             *string // relative path under IMAGE_STORAGE_PATH
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Location *Location `gorm:"foreignKey:LocationID"`
	Status   *Status   `gorm:"foreignKey:StatusID"`
}

func (Item) TableName() string { return "items" }

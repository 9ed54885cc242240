package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock ledger actions.
const (
	StockActionAdd      = "add"
	StockActionSubtract = "subtract"
)

// StockHistoryEntry records every stock mutation on an item. Append-only:
// rows are created exactly once per successful ledger mutation, in the same
// transaction as the stock update, and are only removed when their item is
// deleted.
type StockHistoryEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"not null"` // "add" | "subtract"
	Quantity    int       `gorm:"not null"` // always positive; Action carries the sign
	OldStock    int       `gorm:"not null"`
	NewStock    int       `gorm:"not null"`
	ActorUserID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time

	Item *Item `gorm:"foreignKey:ItemID"`
}

// TableName overrides GORM's default pluralization.
func (StockHistoryEntry) TableName() string { return "stock_history" }

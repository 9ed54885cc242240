package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// UpdateStockRequest is the body of POST /items/:id/update-stock/.
// "type" is the wire name the client sends for the ledger action.
type UpdateStockRequest struct {
	Type     string `json:"type"     validate:"required,oneof=add subtract"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type UpdateStockResponse struct {
	Success     bool   `json:"success"`
	Stock       int    `json:"stock"`
	HistoryID   string `json:"history_id"`
	StockStatus string `json:"stock_status"`
}

type StockHistoryEntryResponse struct {
	ID          string `json:"id"`
	ItemID      string `json:"item_id"`
	Action      string `json:"action"`
	Quantity    int    `json:"quantity"`
	OldStock    int    `json:"old_stock"`
	NewStock    int    `json:"new_stock"`
	ActorUserID string `json:"actor_user_id"`
	CreatedAt   string `json:"created_at"`
}

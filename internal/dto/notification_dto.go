package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type SendNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	Message string `json:"message" validate:"required,max=500"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type NotificationResponse struct {
	ID        string  `json:"id"`
	Message   string  `json:"message"`
	IsRead    bool    `json:"is_read"`
	ItemID    *string `json:"item_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateItemRequest is bound from multipart form data because item creation
// may carry an image file. Initial stock is declared here, not "added": this
// is the only path that sets stock without a ledger entry.
type CreateItemRequest struct {
	Name              string  `form:"name"                validate:"required,min=2,max=100"`
	Description       *string `form:"description"`
	CategoryID        string  `form:"category_id"         validate:"required,uuid"`
	LocationID        string  `form:"location_id"         validate:"required,uuid"`
	StatusID          string  `form:"status_id"           validate:"required,uuid"`
	Stock             int     `form:"stock"               validate:"min=0"`
	MinStock          int     `form:"min_stock"           validate:"required,min=1"`
	ResponsibleUserID *string `form:"responsible_user_id" validate:"omitempty,uuid"`
	QRCode            *string `form:"qr_code"`
}

// UpdateItemRequest has patch semantics: only supplied fields are applied.
// There is intentionally no stock field: stock mutates only through the
// ledger endpoint so every change is audited.
type UpdateItemRequest struct {
	Name              *string `json:"name"                validate:"omitempty,min=2,max=100"`
	Description       *string `json:"description"`
	CategoryID        *string `json:"category_id"         validate:"omitempty,uuid"`
	LocationID        *string `json:"location_id"         validate:"omitempty,uuid"`
	StatusID          *string `json:"status_id"           validate:"omitempty,uuid"`
	MinStock          *int    `json:"min_stock"           validate:"omitempty,min=1"`
	ResponsibleUserID *string `json:"responsible_user_id" validate:"omitempty,uuid"`
	QRCode            *string `json:"qr_code"`
}

// ── Filter ────────────────────────────────────────────────────────────────────

type ItemFilter struct {
	Query      string `form:"q"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	LocationID string `form:"location_id" validate:"omitempty,uuid"`
	StatusID   string `form:"status_id"   validate:"omitempty,uuid"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// ItemResponse carries both status concepts side by side: the operator-set
// administrative label and the stock status derived on every read.
type ItemResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	CategoryID        string  `json:"category_id"`
	Category          string  `json:"category"`
	LocationID        string  `json:"location_id"`
	Location          string  `json:"location"`
	StatusID          string  `json:"status_id"`
	Status            string  `json:"status"`
	Stock             int     `json:"stock"`
	MinStock          int     `json:"min_stock"`
	StockStatus       string  `json:"stock_status"`
	ResponsibleUserID *string `json:"responsible_user_id"`
	QRCode            *string `json:"qr_code"`
	Image             *string `json:"image"`
	CreatedAt         string  `json:"created_at"`
}

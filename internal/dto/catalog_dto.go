package dto

import "github.com/google/uuid"

// Categories and locations share one wire shape: {id, name}.

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCatalogEntryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type RenameCatalogEntryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CatalogEntryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

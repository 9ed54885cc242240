package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// TokenResponse matches the wire contract the client expects from
// POST /api/token/: a bearer pair.
type TokenResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserResponse `json:"user"`
}

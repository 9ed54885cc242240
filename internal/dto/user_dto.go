package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin intern"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=60"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin intern"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// UserResponse never carries the password credential.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

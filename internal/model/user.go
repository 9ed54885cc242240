package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Admins manage users, catalog data and notifications; interns
// operate day-to-day stock movements.
const (
	RoleAdmin  = "admin"
	RoleIntern = "intern"
)

// User stores system users with role-based access. PasswordHash is never
// serialized back to clients.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'intern'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

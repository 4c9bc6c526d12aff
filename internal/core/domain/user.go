package domain

import "time"

// Role classifies what an account is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleFromString coerces a wire-level role string into a Role. Only the
// exact string "admin" yields RoleAdmin; anything else falls back to
// RoleUser so an unknown role can never grant elevated access.
func RoleFromString(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// User models an account in the system. The client holds a read-only
// projection; ID and both timestamps are assigned server-side and are
// immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

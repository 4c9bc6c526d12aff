package domain

import "time"

// Credentials is the outcome of a successful login or registration: the
// authenticated user plus the bearer pair the client persists.
type Credentials struct {
	User         *User
	AuthToken    string
	RefreshToken string
}

// Session is the server-side record backing a bearer pair. It only exists
// while the session is alive; expiry is enforced by the store's TTL.
type Session struct {
	ID           string
	UserID       string
	RefreshToken string
	CreatedAt    time.Time
}

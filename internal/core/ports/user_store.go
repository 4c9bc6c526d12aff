package ports

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// UserStore is the server-side persistence contract for account records.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// SessionStore tracks live sessions and short-lived one-shot tokens
// (password reset, e-mail verification). Records disappear on their own
// when the TTL lapses.
type SessionStore interface {
	Put(ctx context.Context, session domain.Session) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error

	PutResetToken(ctx context.Context, token, userID string) error
	TakeResetToken(ctx context.Context, token string) (string, error)
	PutVerificationToken(ctx context.Context, token, userID string) error
}

// Mailer delivers account mail. Actual delivery is an external system; the
// service only depends on this boundary.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
	SendVerification(ctx context.Context, email, token string) error
}

package ports

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// AccountService is the server-side application boundary consumed by the
// HTTP handlers.
type AccountService interface {
	Register(ctx context.Context, email, password, username string, role domain.Role) (*domain.Credentials, error)
	Login(ctx context.Context, email, password string) (*domain.Credentials, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID, sessionID string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ResendVerification(ctx context.Context, identifier string) error

	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, email, username string, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// UserRepository is the generic CRUD contract over the /users resource.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Save(ctx context.Context, user domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// AuthRepository translates domain-level authentication operations into
// transport calls and maps wire responses into domain users.
//
// CurrentUser distinguishes "no active session" from a transport failure:
// (nil, nil) means the backend answered and there is no session, while a
// non-nil error means the question could not be answered at all.
type AuthRepository interface {
	UserRepository

	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password, username string, role domain.Role) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
}

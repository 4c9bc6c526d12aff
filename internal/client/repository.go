package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// userResponse is the backend's wire representation of a user.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// mapUser converts the wire representation into the domain entity. The role
// is coerced through RoleFromString, so anything that is not exactly
// "admin" reads back as a regular user.
func mapUser(w userResponse) (*domain.User, error) {
	createdAt, err := time.Parse(time.RFC3339, w.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:        w.ID,
		Email:     w.Email,
		Username:  w.Username,
		Role:      domain.RoleFromString(w.Role),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// APIRepository implements ports.AuthRepository against the HTTP backend.
// Every method collapses transport-level failures into one coarse domain
// sentinel; the underlying cause is only logged.
type APIRepository struct {
	gw  *Gateway
	log zerolog.Logger
}

func NewAPIRepository(gw *Gateway, log zerolog.Logger) *APIRepository {
	return &APIRepository{gw: gw, log: log}
}

func (r *APIRepository) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp userResponse
	if err := r.gw.Do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, r.fail(err, domain.ErrAuthenticationFailed)
	}
	user, err := mapUser(resp)
	if err != nil {
		return nil, r.fail(err, domain.ErrAuthenticationFailed)
	}
	return user, nil
}

func (r *APIRepository) Register(ctx context.Context, email, password, username string, role domain.Role) (*domain.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"username": username,
		"role":     string(role),
	}

	var resp userResponse
	if err := r.gw.Do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, r.fail(err, domain.ErrRegistrationFailed)
	}
	user, err := mapUser(resp)
	if err != nil {
		return nil, r.fail(err, domain.ErrRegistrationFailed)
	}
	return user, nil
}

func (r *APIRepository) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := r.gw.Do(ctx, http.MethodPost, "/auth/forgot-password", body, nil); err != nil {
		return r.fail(err, domain.ErrRequestFailed)
	}
	return nil
}

func (r *APIRepository) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	if err := r.gw.Do(ctx, http.MethodPost, "/auth/reset-password", body, nil); err != nil {
		return r.fail(err, domain.ErrResetFailed)
	}
	return nil
}

// Logout tells the backend to revoke the session and drops the stored
// credential pair either way: a client without tokens is logged out no
// matter what the backend said.
func (r *APIRepository) Logout(ctx context.Context) error {
	err := r.gw.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	r.gw.ClearCredentials()
	if err != nil {
		return r.fail(err, domain.ErrLogoutFailed)
	}
	return nil
}

// CurrentUser resolves the active session. A 401 (or session-expired 440)
// answer means "nobody is logged in" and returns (nil, nil); anything else
// that fails is a real error the caller can distinguish.
func (r *APIRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	var resp userResponse
	err := r.gw.Do(ctx, http.MethodGet, "/auth/me", nil, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == StatusSessionExpired) {
			return nil, nil
		}
		return nil, err
	}
	return mapUser(resp)
}

func (r *APIRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return nil, domain.ErrNotImplemented
}

// FindByID returns (nil, nil) when the user does not exist.
func (r *APIRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var resp userResponse
	err := r.gw.Do(ctx, http.MethodGet, "/users/"+id, nil, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapUser(resp)
}

func (r *APIRepository) Save(ctx context.Context, user domain.User) (*domain.User, error) {
	body := map[string]string{
		"email":    user.Email,
		"username": user.Username,
		"role":     string(user.Role),
	}

	var resp userResponse
	if err := r.gw.Do(ctx, http.MethodPut, "/users/"+user.ID, body, &resp); err != nil {
		return nil, r.fail(err, domain.ErrUpdateFailed)
	}
	updated, err := mapUser(resp)
	if err != nil {
		return nil, r.fail(err, domain.ErrUpdateFailed)
	}
	return updated, nil
}

func (r *APIRepository) Delete(ctx context.Context, id string) error {
	if err := r.gw.Do(ctx, http.MethodDelete, "/users/"+id, nil, nil); err != nil {
		return r.fail(err, domain.ErrDeleteFailed)
	}
	return nil
}

// fail logs the real cause and returns the coarse sentinel the caller sees.
func (r *APIRepository) fail(cause, sentinel error) error {
	r.log.Debug().Err(cause).Msg(sentinel.Error())
	return sentinel
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestion-esports/account-system/internal/core/domain"
	"github.com/gestion-esports/account-system/internal/core/ports"
)

const minPasswordLength = 8

// AccountService implements registration, login, session lifecycle and the
// password-reset / verification flows.
type AccountService struct {
	users     ports.UserStore
	sessions  ports.SessionStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(users ports.UserStore, sessions ports.SessionStore, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		users:     users,
		sessions:  sessions,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AccountService) Register(ctx context.Context, email, password, username string, role domain.Role) (*domain.Credentials, error) {
	if email == "" || username == "" || len(password) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, created)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Credentials, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, sessionID)
}

// CurrentUser resolves a bearer back to its account. A structurally valid
// token whose session record is gone yields ErrSessionExpired, which the
// API layer renders as 440 rather than 401.
func (s *AccountService) CurrentUser(ctx context.Context, userID, sessionID string) (*domain.User, error) {
	alive, err := s.sessions.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, domain.ErrSessionExpired
	}
	return s.users.FindByID(ctx, userID)
}

// ForgotPassword starts a reset flow. An unknown address is deliberately
// indistinguishable from a known one to the caller.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Debug().Str("email", email).Msg("password reset requested for unknown address")
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.sessions.PutResetToken(ctx, token, user.ID); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, token)
}

func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidCredentials
	}

	userID, err := s.sessions.TakeResetToken(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	_, err = s.users.Update(ctx, user)
	return err
}

func (s *AccountService) ResendVerification(ctx context.Context, identifier string) error {
	user, err := s.users.FindByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.log.Debug().Str("identifier", identifier).Msg("verification requested for unknown address")
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.sessions.PutVerificationToken(ctx, token, user.ID); err != nil {
		return err
	}
	return s.mailer.SendVerification(ctx, user.Email, token)
}

func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AccountService) UpdateUser(ctx context.Context, id string, email, username string, role domain.Role) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if username != "" {
		user.Username = username
	}
	if role != "" {
		user.Role = domain.RoleFromString(string(role))
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *AccountService) openSession(ctx context.Context, user *domain.User) (*domain.Credentials, error) {
	session := domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(user, session.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Credentials{
		User:         user,
		AuthToken:    token,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (s *AccountService) signToken(user *domain.User, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"sid":   sessionID,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

type stubUserStore struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[string]*domain.User{}}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubUserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	s.nextID++
	created := cloneUser(user)
	created.ID = strconv.Itoa(s.nextID)
	s.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *stubUserStore) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := s.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (s *stubUserStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	resets   map[string]string
	verifies map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: map[string]domain.Session{},
		resets:   map[string]string{},
		verifies: map[string]string{},
	}
}

func (s *stubSessionStore) Put(_ context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *stubSessionStore) PutResetToken(_ context.Context, token, userID string) error {
	s.resets[token] = userID
	return nil
}

func (s *stubSessionStore) TakeResetToken(_ context.Context, token string) (string, error) {
	userID, ok := s.resets[token]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(s.resets, token)
	return userID, nil
}

func (s *stubSessionStore) PutVerificationToken(_ context.Context, token, userID string) error {
	s.verifies[token] = userID
	return nil
}

type stubMailer struct {
	resets   []string
	verifies []string
}

func (m *stubMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.resets = append(m.resets, email)
	return nil
}

func (m *stubMailer) SendVerification(_ context.Context, email, token string) error {
	m.verifies = append(m.verifies, email)
	return nil
}

func newService() (*AccountService, *stubUserStore, *stubSessionStore, *stubMailer) {
	users := newStubUserStore()
	sessions := newStubSessionStore()
	mailer := &stubMailer{}
	svc := NewAccountService(users, sessions, mailer, "secret", time.Hour, zerolog.Nop())
	return svc, users, sessions, mailer
}

func TestAccountService_Register_Success(t *testing.T) {
	svc, _, sessions, _ := newService()

	creds, err := svc.Register(context.Background(), "alice@example.com", "s3cretpass", "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if creds.User == nil || creds.User.ID == "" {
		t.Fatalf("expected created user, got %+v", creds.User)
	}
	if creds.User.PasswordHash == "s3cretpass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.User.PasswordHash), []byte("s3cretpass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if creds.AuthToken == "" || creds.RefreshToken == "" {
		t.Fatalf("expected a full credential pair")
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("registration must open a session")
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	svc, _, _, _ := newService()

	if _, err := svc.Register(context.Background(), "", "longenough", "x", domain.RoleUser); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@example.com", "short", "x", domain.RoleUser); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for short password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@example.com", "longenough", "x", domain.Role("owner")); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newService()

	if _, err := svc.Register(context.Background(), "bob@example.com", "longenough", "bob", domain.RoleUser); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "otherpass1", "bob2", domain.RoleUser); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	svc, _, _, _ := newService()

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cretpass", "carol", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	creds, err := svc.Login(context.Background(), "carol@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if creds.User == nil || creds.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", creds.User)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(creds.AuthToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["sid"] == "" || claims["sid"] == nil {
		t.Fatalf("expected session id claim")
	}
}

func TestAccountService_Login_InvalidPassword(t *testing.T) {
	svc, _, _, _ := newService()

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass12", "dave", domain.RoleUser)
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UserNotFound(t *testing.T) {
	svc, _, _, _ := newService()

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_CurrentUser_SessionLifecycle(t *testing.T) {
	svc, _, _, _ := newService()

	creds, err := svc.Register(context.Background(), "erin@example.com", "s3cretpass", "erin", domain.RoleUser)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := jwt.MapClaims{}
	_, _ = jwt.ParseWithClaims(creds.AuthToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	sid, _ := claims["sid"].(string)

	user, err := svc.CurrentUser(context.Background(), creds.User.ID, sid)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.Email != "erin@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), creds.User.ID, sid); err != domain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired after logout, got %v", err)
	}
}

func TestAccountService_PasswordResetFlow(t *testing.T) {
	svc, _, sessions, mailer := newService()

	creds, _ := svc.Register(context.Background(), "faye@example.com", "originalpw", "faye", domain.RoleUser)

	if err := svc.ForgotPassword(context.Background(), "faye@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if len(mailer.resets) != 1 || mailer.resets[0] != "faye@example.com" {
		t.Fatalf("reset mail not sent: %+v", mailer.resets)
	}
	if len(sessions.resets) != 1 {
		t.Fatalf("reset token not stored")
	}

	var token string
	for tok := range sessions.resets {
		token = tok
	}

	if err := svc.ResetPassword(context.Background(), token, "freshpass99"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	// Old password no longer works, new one does.
	if _, err := svc.Login(context.Background(), "faye@example.com", "originalpw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still valid: %v", err)
	}
	if _, err := svc.Login(context.Background(), "faye@example.com", "freshpass99"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// The token is single use.
	if err := svc.ResetPassword(context.Background(), token, "anotherpass"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
	_ = creds
}

func TestAccountService_ForgotPassword_UnknownAddressIsSilent(t *testing.T) {
	svc, _, _, mailer := newService()

	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown address must not error: %v", err)
	}
	if len(mailer.resets) != 0 {
		t.Fatalf("no mail should be sent for unknown addresses")
	}
}

func TestAccountService_UpdateUser_CoercesRole(t *testing.T) {
	svc, _, _, _ := newService()

	creds, _ := svc.Register(context.Background(), "gus@example.com", "s3cretpass", "gus", domain.RoleUser)

	updated, err := svc.UpdateUser(context.Background(), creds.User.ID, "gus@new.example.com", "", domain.Role("superadmin"))
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Email != "gus@new.example.com" || updated.Username != "gus" {
		t.Fatalf("unexpected user: %+v", updated)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("unknown role must coerce to user, got %q", updated.Role)
	}
}

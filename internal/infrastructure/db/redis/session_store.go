package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// SessionStore keeps live sessions and one-shot tokens in Redis. Everything
// carries a TTL, so expiry needs no sweeper: a session whose key is gone is
// an expired session.
//
// Key layout:
//
//	session:<id>  → user id
//	reset:<tok>   → user id
//	verify:<tok>  → user id
type SessionStore struct {
	client          *redis.Client
	sessionTTL      time.Duration
	resetTTL        time.Duration
	verificationTTL time.Duration
}

func NewSessionStore(client *redis.Client, sessionTTL, resetTTL, verificationTTL time.Duration) *SessionStore {
	return &SessionStore{
		client:          client,
		sessionTTL:      sessionTTL,
		resetTTL:        resetTTL,
		verificationTTL: verificationTTL,
	}
}

func (s *SessionStore) Put(ctx context.Context, session domain.Session) error {
	if err := s.client.Set(ctx, sessionKey(session.ID), session.UserID, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) PutResetToken(ctx context.Context, token, userID string) error {
	if err := s.client.Set(ctx, "reset:"+token, userID, s.resetTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

// TakeResetToken consumes a reset token: the read and the delete are one
// operation, so a token can never be redeemed twice.
func (s *SessionStore) TakeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, "reset:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("take reset token: %w", err)
	}
	return userID, nil
}

func (s *SessionStore) PutVerificationToken(ctx context.Context, token, userID string) error {
	if err := s.client.Set(ctx, "verify:"+token, userID, s.verificationTTL).Err(); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

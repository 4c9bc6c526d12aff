// Package mail holds the outbound-mail adapters. Real delivery belongs to
// an external provider; LogMailer stands in for it in development and
// tests.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes every mail it would send to the log instead of
// delivering it.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.log.Info().
		Str("email", email).
		Str("token", token).
		Msg("password reset mail")
	return nil
}

func (m *LogMailer) SendVerification(_ context.Context, email, token string) error {
	m.log.Info().
		Str("email", email).
		Str("token", token).
		Msg("verification mail")
	return nil
}

package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Navigator abstracts the redirect side effect of an expired session. In a
// browser this would be history navigation; the CLI prints and exits.
type Navigator interface {
	Redirect(path string, replace bool)
}

type sessionAPI interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// HeartbeatOptions configures a Heartbeat. Zero values take the defaults
// documented on each field.
type HeartbeatOptions struct {
	// Interval between session checks. Defaults to 5 minutes.
	Interval time.Duration
	// RedirectTo is where the Navigator is sent on expiry when no
	// OnExpired callback is set. Defaults to "/login".
	RedirectTo string
	// OnExpired, when set, replaces the redirect entirely.
	OnExpired func()
	// ReplaceHistory is forwarded to the Navigator.
	ReplaceHistory bool
}

// Heartbeat polls the session-validity endpoint at a fixed interval,
// independently of user-driven traffic. A 401 or 440 answer triggers the
// expiry side effect; every other failure is logged and the schedule keeps
// running.
type Heartbeat struct {
	api            sessionAPI
	nav            Navigator
	interval       time.Duration
	redirectTo     string
	onExpired      func()
	replaceHistory bool
	log            zerolog.Logger
}

func NewHeartbeat(api sessionAPI, nav Navigator, opts HeartbeatOptions, log zerolog.Logger) *Heartbeat {
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Minute
	}
	if opts.RedirectTo == "" {
		opts.RedirectTo = "/login"
	}
	return &Heartbeat{
		api:            api,
		nav:            nav,
		interval:       opts.Interval,
		redirectTo:     opts.RedirectTo,
		onExpired:      opts.OnExpired,
		replaceHistory: opts.ReplaceHistory,
		log:            log,
	}
}

// Run checks the session immediately, then on every tick until ctx is
// cancelled. Cancelling ctx is the only way the schedule stops.
func (h *Heartbeat) Run(ctx context.Context) {
	h.check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.check(ctx)
		}
	}
}

func (h *Heartbeat) check(ctx context.Context) {
	err := h.api.Do(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err == nil {
		return
	}

	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == StatusSessionExpired) {
		h.log.Info().Int("status", se.Code).Msg("session expired")
		if h.onExpired != nil {
			h.onExpired()
			return
		}
		h.nav.Redirect(h.redirectTo, h.replaceHistory)
		return
	}

	// Network and server errors never tear the heartbeat down.
	h.log.Warn().Err(err).Msg("session check failed")
}

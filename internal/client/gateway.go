// Package client implements the SDK side of the account system: the HTTP
// gateway all traffic funnels through, the repository that maps wire
// responses into domain users, and the session heartbeat.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestion-esports/account-system/internal/core/ports"
)

// StatusSessionExpired is the non-standard code some session-aware proxies
// use for "logged in once, but the session lapsed". The heartbeat treats it
// like a 401.
const StatusSessionExpired = 440

// RefreshTokenHeader carries a rotated refresh credential on responses.
const RefreshTokenHeader = "X-Refresh-Token"

const probeTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response that reached the backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Message)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GatewayConfig collects the knobs the gateway needs from the environment.
type GatewayConfig struct {
	BaseURL         string
	Timeout         time.Duration
	AuthTokenKey    string
	RefreshTokenKey string
	// SessionCheckInterval is how long the session timer waits without
	// traffic before probing /auth/me. Zero disables the probe.
	SessionCheckInterval time.Duration
	// Analytics enables per-response instrumentation logging.
	Analytics bool
}

// Gateway is the single outbound channel to the backend. It attaches the
// bearer credential to every request, resets the session timer on all
// traffic, persists rotated credentials, and clears the stored pair when
// the backend answers 401.
type Gateway struct {
	base      *url.URL
	http      httpDoer
	tokens    ports.TokenStore
	authKey   string
	refresh   string
	timer     *SessionTimer
	analytics bool
	log       zerolog.Logger
}

// NewGateway validates cfg and builds a Gateway over its own http.Client.
func NewGateway(cfg GatewayConfig, tokens ports.TokenStore, log zerolog.Logger) (*Gateway, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", cfg.BaseURL)
	}

	g := &Gateway{
		base:      base,
		http:      &http.Client{Timeout: cfg.Timeout},
		tokens:    tokens,
		authKey:   cfg.AuthTokenKey,
		refresh:   cfg.RefreshTokenKey,
		analytics: cfg.Analytics,
		log:       log,
	}
	g.timer = NewSessionTimer(cfg.SessionCheckInterval, g.probeSession)
	return g, nil
}

// Do issues one request against the backend. body (when non-nil) is sent as
// JSON; out (when non-nil) receives the decoded JSON response. Non-2xx
// statuses surface as *StatusError; transport and decode failures are
// wrapped and passed through.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base.JoinPath(path).String(), payload)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if tok, ok := g.tokens.Get(g.authKey); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	g.timer.Reset()
	start := time.Now()
	resp, err := g.http.Do(req)
	g.timer.Reset()
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if g.analytics {
		g.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("api call")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.ClearCredentials()
		return &StatusError{Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	g.captureCredentials(resp.Header)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	return nil
}

// ClearCredentials removes both stored credentials. Called internally on
// 401 responses and by the repository on logout.
func (g *Gateway) ClearCredentials() {
	if err := g.tokens.Remove(g.authKey); err != nil {
		g.log.Warn().Err(err).Msg("failed to clear auth credential")
	}
	if err := g.tokens.Remove(g.refresh); err != nil {
		g.log.Warn().Err(err).Msg("failed to clear refresh credential")
	}
}

// Close stops the session timer. In-flight requests are unaffected.
func (g *Gateway) Close() {
	g.timer.Stop()
}

// captureCredentials persists a rotated bearer pair delivered through
// response headers, which is how login and registration hand tokens to the
// client while keeping the body a plain user document.
func (g *Gateway) captureCredentials(h http.Header) {
	if auth := h.Get("Authorization"); auth != "" {
		if tok, ok := strings.CutPrefix(auth, "Bearer "); ok && tok != "" {
			if err := g.tokens.Set(g.authKey, tok); err != nil {
				g.log.Warn().Err(err).Msg("failed to persist auth credential")
			}
		}
	}
	if ref := h.Get(RefreshTokenHeader); ref != "" {
		if err := g.tokens.Set(g.refresh, ref); err != nil {
			g.log.Warn().Err(err).Msg("failed to persist refresh credential")
		}
	}
}

// probeSession is the timer callback: one best-effort session validation.
// Failures are ignored here; a 401 still clears credentials through the
// regular response path.
func (g *Gateway) probeSession() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := g.Do(ctx, http.MethodGet, "/auth/me", nil, nil); err != nil {
		g.log.Debug().Err(err).Msg("session probe failed")
	}
}

func readErrorMessage(r io.Reader) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

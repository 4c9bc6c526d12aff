package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestion-esports/account-system/internal/infrastructure/tokenstore"
)

func newTestGateway(t *testing.T, url string, tokens *tokenstore.Memory) *Gateway {
	t.Helper()
	gw, err := NewGateway(GatewayConfig{
		BaseURL:         url,
		Timeout:         5 * time.Second,
		AuthTokenKey:    "auth_token",
		RefreshTokenKey: "refresh_token",
	}, tokens, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGateway: %v", err)
	}
	t.Cleanup(gw.Close)
	return gw
}

func TestGateway_AttachesBearerOnlyWhenPresent(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := tokenstore.NewMemory()
	gw := newTestGateway(t, srv.URL, tokens)

	// No credential stored: no authorization header.
	if err := gw.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth[0] != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth[0])
	}

	// Credential stored: bearer header attached.
	_ = tokens.Set("auth_token", "tok-abc")
	if err := gw.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth[1] != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth[1])
	}
}

func TestGateway_UnauthorizedClearsBothCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	tokens := tokenstore.NewMemory()
	_ = tokens.Set("auth_token", "stale")
	_ = tokens.Set("refresh_token", "stale-refresh")
	gw := newTestGateway(t, srv.URL, tokens)

	err := gw.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	se, ok := err.(*StatusError)
	if !ok || se.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
	if se.Message != "invalid token" {
		t.Fatalf("unexpected message: %q", se.Message)
	}

	if _, ok := tokens.Get("auth_token"); ok {
		t.Fatalf("auth credential must be cleared after 401")
	}
	if _, ok := tokens.Get("refresh_token"); ok {
		t.Fatalf("refresh credential must be cleared after 401")
	}
}

func TestGateway_UnauthorizedWithoutPriorCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := tokenstore.NewMemory()
	gw := newTestGateway(t, srv.URL, tokens)

	if err := gw.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := tokens.Get("auth_token"); ok {
		t.Fatalf("store must stay empty")
	}
}

func TestGateway_CapturesRotatedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer fresh-token")
		w.Header().Set(RefreshTokenHeader, "fresh-refresh")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := tokenstore.NewMemory()
	gw := newTestGateway(t, srv.URL, tokens)

	if err := gw.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{}, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}

	if v, _ := tokens.Get("auth_token"); v != "fresh-token" {
		t.Fatalf("auth credential not captured: %q", v)
	}
	if v, _ := tokens.Get("refresh_token"); v != "fresh-refresh" {
		t.Fatalf("refresh credential not captured: %q", v)
	}
}

func TestGateway_NonOKStatusPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"user already exists"}`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL, tokenstore.NewMemory())

	err := gw.Do(context.Background(), http.MethodPost, "/auth/register", map[string]string{}, nil)
	se, ok := err.(*StatusError)
	if !ok || se.Code != http.StatusConflict || se.Message != "user already exists" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGateway_SessionTimerProbesAfterInactivity(t *testing.T) {
	probes := make(chan string, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes <- r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw, err := NewGateway(GatewayConfig{
		BaseURL:              srv.URL,
		Timeout:              5 * time.Second,
		AuthTokenKey:         "auth_token",
		RefreshTokenKey:      "refresh_token",
		SessionCheckInterval: 50 * time.Millisecond,
	}, tokenstore.NewMemory(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGateway: %v", err)
	}
	defer gw.Close()

	// Traffic arms the timer; silence afterwards lets it lapse.
	if err := gw.Do(context.Background(), http.MethodGet, "/users/1", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if p := <-probes; p != "/users/1" {
		t.Fatalf("unexpected first request: %s", p)
	}

	select {
	case p := <-probes:
		if p != "/auth/me" {
			t.Fatalf("expected session probe, got %s", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("session timer never fired")
	}
}

func TestNewGateway_RejectsRelativeURL(t *testing.T) {
	_, err := NewGateway(GatewayConfig{BaseURL: "/api"}, tokenstore.NewMemory(), zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error for relative base url")
	}
}

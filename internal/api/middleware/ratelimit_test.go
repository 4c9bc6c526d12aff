package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func doLimited(e *echo.Echo, mw echo.MiddlewareFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRateLimit_AllowsWithinBudget(t *testing.T) {
	e := echo.New()
	mw := NewRateLimit(5).Middleware()

	for i := 0; i < 5; i++ {
		if rec := doLimited(e, mw, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestRateLimit_RejectsBeyondBudget(t *testing.T) {
	e := echo.New()
	mw := NewRateLimit(3).Middleware()

	for i := 0; i < 3; i++ {
		if rec := doLimited(e, mw, "10.0.0.2"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := doLimited(e, mw, "10.0.0.2")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRateLimit_TracksClientsSeparately(t *testing.T) {
	e := echo.New()
	mw := NewRateLimit(1).Middleware()

	if rec := doLimited(e, mw, "10.0.0.3"); rec.Code != http.StatusOK {
		t.Fatalf("first client: expected 200, got %d", rec.Code)
	}
	if rec := doLimited(e, mw, "10.0.0.3"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first client: expected 429, got %d", rec.Code)
	}
	if rec := doLimited(e, mw, "10.0.0.4"); rec.Code != http.StatusOK {
		t.Fatalf("second client: expected 200, got %d", rec.Code)
	}
}

func TestRateLimit_EvictsStaleClients(t *testing.T) {
	m := NewRateLimit(1)
	for i := 0; i < maxTrackedClients+10; i++ {
		m.allow(fmt.Sprintf("10.1.%d.%d", i/256, i%256))
	}
	// Every entry is fresh, so nothing should have been evicted yet.
	if len(m.clients) < maxTrackedClients {
		t.Fatalf("fresh clients evicted: %d tracked", len(m.clients))
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 1000

// RateLimit throttles requests per client IP. Intended for the credential
// endpoints, where unbounded retries mean password guessing. rpm requests
// per minute are allowed with a burst of the same size.
type RateLimit struct {
	rpm     int
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimit(rpm int) *RateLimit {
	if rpm <= 0 {
		rpm = 10
	}
	return &RateLimit{
		rpm:     rpm,
		clients: map[string]*clientLimiter{},
	}
}

// Middleware returns the echo middleware enforcing the limit.
func (m *RateLimit) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", "60")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

func (m *RateLimit) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cl, ok := m.clients[ip]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.rpm)), m.rpm),
		}
		m.clients[ip] = cl
		m.gcLocked()
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

// gcLocked drops limiters for clients not seen recently once the table
// grows past maxTrackedClients.
func (m *RateLimit) gcLocked() {
	if len(m.clients) < maxTrackedClients {
		return
	}
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, cl := range m.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

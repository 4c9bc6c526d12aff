package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Client configures the SDK side: where the API lives and under which keys
// the bearer pair is persisted. APIURL has no default on purpose; startup
// fails fast when it is missing.
type Client struct {
	APIURL            string        `env:"API_URL, required"`
	APITimeout        time.Duration `env:"API_TIMEOUT, default=10s"`
	AuthTokenKey      string        `env:"AUTH_TOKEN_KEY, default=auth_token"`
	RefreshTokenKey   string        `env:"REFRESH_TOKEN_KEY, default=refresh_token"`
	AppLang           string        `env:"APP_LANG, default=es"`
	EnableAnalytics   bool          `env:"ENABLE_ANALYTICS, default=false"`
	EnableDebugTools  bool          `env:"ENABLE_DEBUG_TOOLS, default=false"`
	EnableWebVitals   bool          `env:"ENABLE_WEB_VITALS, default=false"`
	RecaptchaSiteKey  string        `env:"RECAPTCHA_SITE_KEY, default="`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL, default=5m"`
}

// Server configures the account API process.
type Server struct {
	Port      string `env:"PORT, default=8080"`
	Env       string `env:"ENV, default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	TokenTTL        time.Duration `env:"TOKEN_TTL, default=24h"`
	SessionTTL      time.Duration `env:"SESSION_TTL, default=24h"`
	ResetTokenTTL   time.Duration `env:"PASSWORD_RESET_TTL, default=1h"`
	VerificationTTL time.Duration `env:"VERIFICATION_TTL, default=24h"`

	AuthRateLimit int `env:"AUTH_RATE_LIMIT, default=10"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=esports_accounts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// LoadClient reads the client configuration from l (the process environment
// when l is nil).
func LoadClient(ctx context.Context, l envconfig.Lookuper) (*Client, error) {
	var cfg Client
	if err := process(ctx, &cfg, l); err != nil {
		return nil, fmt.Errorf("config: load client: %w", err)
	}
	return &cfg, nil
}

// LoadServer reads the server configuration from l (the process environment
// when l is nil).
func LoadServer(ctx context.Context, l envconfig.Lookuper) (*Server, error) {
	var cfg Server
	if err := process(ctx, &cfg, l); err != nil {
		return nil, fmt.Errorf("config: load server: %w", err)
	}
	return &cfg, nil
}

func process(ctx context.Context, target any, l envconfig.Lookuper) error {
	if l == nil {
		l = envconfig.OsLookuper()
	}
	return envconfig.ProcessWith(ctx, &envconfig.Config{Target: target, Lookuper: l})
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestion-esports/account-system/internal/api/handler"
	"github.com/gestion-esports/account-system/internal/api/middleware"
	"github.com/gestion-esports/account-system/internal/core/domain"
	"github.com/gestion-esports/account-system/internal/core/service"
	"github.com/gestion-esports/account-system/internal/infrastructure/config"
	mongodb "github.com/gestion-esports/account-system/internal/infrastructure/db/mongo"
	redisdb "github.com/gestion-esports/account-system/internal/infrastructure/db/redis"
	"github.com/gestion-esports/account-system/internal/infrastructure/mail"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Server, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL, cfg.ResetTokenTTL, cfg.VerificationTTL)
	mailer := mail.NewLogMailer(log)
	accounts := service.NewAccountService(users, sessions, mailer, cfg.JWTSecret, cfg.TokenTTL, log)

	authHandler := handler.NewAuthHandler(accounts)
	userHandler := handler.NewUserHandler(accounts)
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	credentialLimit := middleware.NewRateLimit(cfg.AuthRateLimit).Middleware()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, credentialLimit)
	e.POST("/auth/login", authHandler.Login, credentialLimit)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword, credentialLimit)
	e.POST("/auth/reset-password", authHandler.ResetPassword, credentialLimit)
	e.POST("/auth/resend-verification", authHandler.ResendVerification, credentialLimit)

	// --- User routes ---
	e.GET("/users/:id", userHandler.Get, authMiddleware)
	e.PUT("/users/:id", userHandler.Update, authMiddleware)
	e.DELETE("/users/:id", userHandler.Delete, authMiddleware, middleware.RequireRole(string(domain.RoleAdmin)))

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

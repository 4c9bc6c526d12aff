package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/gestion-esports/account-system/internal/api"
	"github.com/gestion-esports/account-system/internal/infrastructure/config"
	mongodb "github.com/gestion-esports/account-system/internal/infrastructure/db/mongo"
	redisdb "github.com/gestion-esports/account-system/internal/infrastructure/db/redis"
	"github.com/gestion-esports/account-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadServer(ctx, nil)
	if err != nil {
		fallback := logger.Init("info", false, os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(cfg.LogLevel, cfg.Env == "development", os.Stdout)

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index setup failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(db, rdb, cfg, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account api listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

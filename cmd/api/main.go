package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftbase/auth-api/internal/api"
	"github.com/craftbase/auth-api/internal/core/service"
	mongodb "github.com/craftbase/auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/craftbase/auth-api/internal/infrastructure/db/redis"
	"github.com/craftbase/auth-api/internal/infrastructure/mail"
	"github.com/craftbase/auth-api/internal/pkg/config"
	"github.com/craftbase/auth-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Collaborators ---
	store := mongodb.NewUserRepository(db)
	codec := service.NewJWTCodec(cfg.JWTSecret, cfg.AccessTokenTTL)
	gate := redisdb.NewBruteForceGate(rdb, cfg.Brute.MaxAttempts, cfg.Brute.Window)

	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	dispatcher := mail.NewDispatcher(cfg.SMTP.Workers, mailer, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	sessions := service.NewSessionManager(store, codec, gate, log)
	resets := service.NewPasswordResetManager(store, dispatcher, cfg.ResetTokenTTL, cfg.ResetBaseURL, log)

	e := api.NewRouter(api.Dependencies{
		Sessions: sessions,
		Resets:   resets,
		Codec:    codec,
		Gate:     gate,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting auth api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

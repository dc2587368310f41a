package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobtrackr/jobtracker-api/internal/api"
	"github.com/jobtrackr/jobtracker-api/internal/core/service"
	"github.com/jobtrackr/jobtracker-api/internal/infrastructure/config"
	mongodb "github.com/jobtrackr/jobtracker-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jobtrackr/jobtracker-api/internal/infrastructure/db/redis"
	"github.com/jobtrackr/jobtracker-api/internal/pkg/token"
	"github.com/jobtrackr/jobtracker-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "jobtracker-api",
	})

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = config.DefaultJWTSecret
		log.Warn().Msg("JWT_SECRET not set, falling back to the built-in default; do not run like this in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	authRepo := mongodb.NewAuthRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := jobRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("job index creation failed")
	}

	// --- Services ---
	tokens := token.NewManager(jwtSecret, cfg.JWTTTL)
	jobCache := redisdb.NewJobListCache(rdb)
	authService := service.NewAuthService(authRepo, jobRepo, tokens, log)
	jobService := service.NewJobService(jobRepo, jobCache, log)

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		JobService:  jobService,
		Tokens:      tokens,
		DB:          db,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

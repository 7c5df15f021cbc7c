// @title        Locker System API
// @version      1.0
// @description  Smart locker management: authentication, inventory, borrow/return transactions, and admin dashboards.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lockerhub/locker-system/internal/api"
	"github.com/lockerhub/locker-system/internal/infrastructure/config"
	mongodb "github.com/lockerhub/locker-system/internal/infrastructure/db/mongo"
	redisdb "github.com/lockerhub/locker-system/internal/infrastructure/db/redis"
	"github.com/lockerhub/locker-system/internal/infrastructure/db/sqlite"
	"github.com/lockerhub/locker-system/internal/infrastructure/queue"
	"github.com/lockerhub/locker-system/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "insert a demo admin, users, items, and lockers, then continue serving")
	resetDB := flag.Bool("reset-db", false, "delete the SQLite database file before starting")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	if *resetDB {
		if err := os.Remove(cfg.SQLite.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("failed to reset database")
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("database reset")
	}

	db, err := sqlite.Open(cfg.SQLite.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open sqlite")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	activityRepo := mongodb.NewActivityRepository(mongoDB)
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure activity indexes")
	}

	dispatcher := queue.NewDispatcher(0, activityRepo, log)
	dispatcher.Start(ctx)

	if *seed {
		if err := seedDemoData(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
		log.Info().Msg("demo data seeded")
	}

	e := api.NewRouter(api.RouterDeps{
		DB:        db,
		Mongo:     mongoDB,
		Redis:     rdb,
		Recorder:  dispatcher,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

// @title           Auth Service API
// @version         1.0
// @description     User registration and role-based authorization over HTTP Basic auth.
// @host            localhost:8080
// @securityDefinitions.basic BasicAuth
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartauth/auth-service/internal/api"
	"github.com/smartauth/auth-service/internal/core/service"
	"github.com/smartauth/auth-service/internal/infrastructure/config"
	mongostore "github.com/smartauth/auth-service/internal/infrastructure/db/mongo"
	redisstore "github.com/smartauth/auth-service/internal/infrastructure/db/redis"
	"github.com/smartauth/auth-service/pkg/logger"

	_ "github.com/smartauth/auth-service/docs"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	// Unique indexes must exist before any registration or seeding runs;
	// they back every check-then-insert in the service layer.
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// Bootstrap seeding: baseline roles + initial admin, before traffic.
	users := mongostore.NewUserRepository(db)
	roles := mongostore.NewRoleRepository(db)
	provisioner := service.NewProvisioner(users, roles, cfg.SeedAdminPassword, log)
	if err := provisioner.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap seeding failed")
	}

	e := api.NewRouter(db, rdb, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

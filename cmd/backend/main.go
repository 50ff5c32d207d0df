// Package main provides the entry point for the Linklet URL shortener service.
//
//	@title			Linklet Backend API
//	@version		1.0
//	@description	URL shortening service with per-day click statistics.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"Linklet-Backend/internal/auth"
	"Linklet-Backend/internal/cache"
	"Linklet-Backend/internal/config"
	"Linklet-Backend/internal/database"
	httpHandler "Linklet-Backend/internal/handler/http"
	"Linklet-Backend/internal/repository/postgres"
	"Linklet-Backend/internal/service"
	"Linklet-Backend/pkg/logger"
	"context"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "Linklet-Backend/docs" // Import swagger docs
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting linklet backend", zap.String("env", cfg.Env))

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		log.Info("running database migrations (auto_migrate: true)")
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	linkCache := newCache(cfg, log)

	storage, err := postgres.New(db, cfg.URLShortener.MachineID, log)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	linkService := service.NewLinkService(storage, linkCache, log)

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:           []byte(cfg.Auth.SecretKey),
		AccessTokenDuration: cfg.Auth.AccessTokenTTL,
		Issuer:              cfg.Auth.Issuer,
	})
	passwordService := auth.NewPasswordService()

	apiServer := httpHandler.NewServer(
		storage,
		linkService,
		jwtService,
		passwordService,
		log,
		cfg.URLShortener.BaseURL,
	)

	httpServer := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      apiServer.SetupRoutes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Info("starting HTTP server", zap.String("address", cfg.HTTPServer.Address))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down linklet backend...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}

// newCache connects to Redis when configured, otherwise returns a no-op
// cache. A Redis that is configured but unreachable degrades to no-op so
// the service still starts.
func newCache(cfg *config.Config, log *zap.Logger) cache.Cache {
	if cfg.Redis.Addr == "" {
		log.Info("redis not configured, running without cache")
		return cache.NewNoop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, running without cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = client.Close()
		return cache.NewNoop()
	}

	log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	return cache.NewRedis(client, cfg.URLShortener.CacheTTL)
}

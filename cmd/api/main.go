package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "go-linkup/cmd/api/router/v1"
	cacheadapter "go-linkup/internal/infrastructure/cache/adapter"
	cacheport "go-linkup/internal/infrastructure/cache/port"
	"go-linkup/internal/infrastructure/config"
	"go-linkup/internal/infrastructure/database"
	identityadapter "go-linkup/internal/infrastructure/identity/adapter"
	queueadapter "go-linkup/internal/infrastructure/queue/adapter"
	queueport "go-linkup/internal/infrastructure/queue/port"
	"go-linkup/internal/infrastructure/realtime"
	"go-linkup/internal/pkg/presence/application/task"
	registryadapter "go-linkup/internal/pkg/presence/persistence/registry/adapter"
	registryport "go-linkup/internal/pkg/presence/persistence/registry/port"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	logger := newLogger(settings.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var cache cacheport.Cache
	var queueClient queueport.Client
	var queueServer queueport.Server
	if settings.RedisURL != "" {
		redisCache, err := cacheadapter.NewRedisAdapter(settings.RedisURL)
		if err != nil {
			logger.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		cache = redisCache

		client, err := queueadapter.NewAsynqClient(settings.RedisURL)
		if err != nil {
			logger.Error("queue client init failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		queueClient = client

		server, err := queueadapter.NewAsynqServer(settings.RedisURL, settings.AsynqConcurrency, logger)
		if err != nil {
			logger.Error("queue server init failed", "error", err)
			os.Exit(1)
		}
		queueServer = server
	} else {
		logger.Warn("REDIS_URL not set; cache and live friend notifications disabled")
	}

	var registry registryport.SessionRegistry
	switch settings.RegistryBackend {
	case "postgres":
		registry = registryadapter.NewPgSessionRegistry(pool)
	default:
		registry = registryadapter.NewMemSessionRegistry()
	}
	logger.Info("session registry ready", "backend", settings.RegistryBackend)

	hub := realtime.NewHub()
	defer hub.Close()

	verifier := identityadapter.NewJWTVerifier(settings.JWTSecret)

	if queueServer != nil {
		task.RegisterFriendNotifyTask(queueServer, hub, logger)
		go func() {
			if err := queueServer.Run(ctx); err != nil {
				logger.Error("queue server stopped", "error", err)
			}
		}()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1.Register(engine, v1.Deps{
		Pool:     pool,
		Cache:    cache,
		Queue:    queueClient,
		Hub:      hub,
		Registry: registry,
		Verifier: verifier,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", "addr", settings.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	if queueServer != nil {
		if err := queueServer.Stop(shutdownCtx); err != nil {
			logger.Error("queue shutdown failed", "error", err)
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

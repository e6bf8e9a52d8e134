package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"go-jobcal-web/config"
	"go-jobcal-web/internal/backend"
	"go-jobcal-web/internal/delivery/http/web"
	"go-jobcal-web/internal/state"
	"go-jobcal-web/pkg/auth"
	"go-jobcal-web/pkg/logger"
	"go-jobcal-web/pkg/session"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting jobcal web client", "port", cfg.Port, "backend", cfg.BackendURL)

	// 3. Setup Token Store (Redis when configured, else in-memory)
	var store session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(session.RedisConfig{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis token store unavailable, using in-memory store", "error", err)
			store = session.NewMemoryStore()
		} else {
			defer redisStore.Close()
			store = redisStore
		}
	} else {
		store = session.NewMemoryStore()
	}

	// 4. Setup Backend Client
	client, err := backend.NewClient(cfg, store)
	if err != nil {
		logger.Log.Error("Failed to build backend client", "error", err)
		os.Exit(1)
	}

	// 5. Setup Application List State and bootstrap the session
	list := state.NewList(client, store)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := list.Bootstrap(ctx); err != nil {
			logger.Log.Warn("Initial bootstrap failed", "error", err)
		}
	}()

	// 6. Setup JWKS Provider (only when a Cognito domain is configured)
	var jwksProvider *auth.Provider
	if cfg.CognitoDomain != "" {
		jwksProvider = auth.NewProvider(cfg.CognitoDomain + "/.well-known/jwks.json")
	}

	// 7. Background silent refresh keeps the calendar current without user
	// action; skipped while unauthenticated.
	scheduler := cron.New()
	spec := fmt.Sprintf("@every %dm", cfg.RefreshIntervalMinutes)
	if _, err := scheduler.AddFunc(spec, func() {
		if !list.Snapshot().Authenticated {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := list.Refresh(ctx, false); err != nil {
			logger.Log.Warn("Background refresh failed", "error", err)
		}
	}); err != nil {
		logger.Log.Error("Failed to schedule background refresh", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 8. Setup Router
	validate := validator.New()
	router := web.NewRouter(web.RouterDeps{
		Backend:      client,
		State:        list,
		Store:        store,
		Validate:     validate,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

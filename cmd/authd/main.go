package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homelab/authgate/internal/api"
	"github.com/homelab/authgate/internal/infrastructure/config"
	"github.com/homelab/authgate/internal/infrastructure/store"
	"github.com/homelab/authgate/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := os.MkdirAll(cfg.Auth.DataDir, 0o700); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Auth.DataDir).Msg("failed to create data directory")
	}

	users, err := store.NewUserStore(cfg.Auth.DataDir, cfg.Auth.DefaultAdminPassword, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open user store")
	}
	sessions, err := store.NewSessionStore(cfg.Auth.DataDir, cfg.Auth.SessionTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}

	e := api.NewRouter(users, sessions, cfg.Auth.DataDir, cfg.Auth.SessionTTL, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("auth service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

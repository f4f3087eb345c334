// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/app"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/config"
	"github.com/festy23/teamwork/internal/database/database"
	"github.com/festy23/teamwork/internal/database/migrate"
	"github.com/festy23/teamwork/internal/metrics"
	"github.com/festy23/teamwork/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var revoker auth.Revoker = auth.NopRevoker{}
	if cfg.Redis.Enabled() {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		revoker = auth.NewRedisRevoker(client)
		log.Infow("token revocation enabled", "redis_addr", cfg.Redis.Addr)
	} else {
		log.Warnw("REDIS_ADDR not set, logout will not revoke tokens server side")
	}

	deps := app.Deps{
		DB:             db,
		Logger:         log,
		Tokens:         auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Hasher:         auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Revoker:        revoker,
		Metrics:        metrics.New(),
		MaxUploadBytes: cfg.Upload.MaxBytes,
	}

	if cfg.Admin.Enabled() {
		if err := app.EnsureAdmin(ctx, deps, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Name); err != nil {
			return fmt.Errorf("failed to ensure administrator account: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.GetAddress(),
		Handler:           app.NewRouter(deps),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, log)
}

// serve runs srv until ctx is cancelled and then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, log *zap.SugaredLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Infow("server stopped")
	return nil
}

// Command functions serves the backend edge functions: push notification
// dispatch and account deletion.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doodlemate-companion/internal/config"
	"github.com/doodlemate-companion/internal/infrastructure/apns"
	"github.com/doodlemate-companion/internal/infrastructure/backend"
	transporthttp "github.com/doodlemate-companion/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.ValidateBackend(); err != nil {
		logger.Fatal("backend config", zap.Error(err))
	}

	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendServiceKey)

	// Push gateway (optional — graceful fallback when signing keys are missing;
	// the push function then answers 500 per its contract).
	var gateway *apns.Client
	if err := cfg.ValidatePush(); err == nil {
		pemBytes, err := cfg.APNSPrivateKeyPEM()
		if err != nil {
			logger.Fatal("read push signing key", zap.Error(err))
		}
		tokens, err := apns.NewTokenSource(cfg.APNSKeyID, cfg.APNSTeamID, pemBytes)
		if err != nil {
			logger.Fatal("parse push signing key", zap.Error(err))
		}
		gateway = apns.NewClient(cfg.APNSHost, cfg.APNSBundleID, tokens)
	} else {
		logger.Warn("push gateway not available", zap.Error(err))
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Backend: backendClient,
		Gateway: gateway,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.AppPort),
			zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// Command widget is the refresh agent standing in for the platform's timeline
// scheduler: each cycle it asks the driver for one timeline entry, writes the
// render model to the spool directory, and sleeps until the driver's requested
// next refresh.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/doodlemate-companion/internal/config"
	"github.com/doodlemate-companion/internal/domain"
	"github.com/doodlemate-companion/internal/infrastructure/backend"
	"github.com/doodlemate-companion/internal/sharedstore"
	"github.com/doodlemate-companion/internal/widget"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// cycleTimeout bounds one refresh cycle; a stalled backend request delays
// only that cycle's single emitted entry.
const cycleTimeout = time.Minute

func main() {
	once := flag.Bool("once", false, "run a single refresh cycle and exit")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.ValidateBackend(); err != nil {
		logger.Fatal("backend config", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.SpoolDir, 0o755); err != nil {
		logger.Fatal("create spool dir", zap.Error(err))
	}

	store, err := sharedstore.New(cfg.StoreDir)
	if err != nil {
		logger.Fatal("open shared store", zap.Error(err))
	}

	state := widget.NewState(store)
	fetcher := backend.NewClient(cfg.BackendURL, cfg.BackendServiceKey)
	driver := widget.NewDriver(state, fetcher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
		entry, next := driver.Timeline(ctx)
		cancel()

		model := widget.Render(entry)
		if err := writeSpool(cfg.SpoolDir, model); err != nil {
			logger.Error("write spool", zap.Error(err))
		} else {
			logger.Info("timeline entry rendered",
				zap.String("kind", string(model.Kind)),
				zap.Time("next_refresh", next))
		}

		if *once {
			return
		}
		select {
		case <-quit:
			logger.Info("widget agent stopped")
			return
		case <-time.After(time.Until(next)):
		}
	}
}

// writeSpool replaces the spool entry atomically so the rendering process
// never reads a torn model.
func writeSpool(dir string, model domain.RenderModel) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, ".entry.json.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, "entry.json"))
}

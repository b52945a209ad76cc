package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/hero-draft-assistant/internal/api"
	"github.com/dom/hero-draft-assistant/internal/config"
	"github.com/dom/hero-draft-assistant/internal/logging"
	"github.com/dom/hero-draft-assistant/internal/repository"
	"github.com/dom/hero-draft-assistant/internal/repository/backend"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/dom/hero-draft-assistant/internal/stats"
	"github.com/dom/hero-draft-assistant/internal/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := backend.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	// Initialize services and restore the saved session
	st := stats.NewStore(logger, cfg.RecommendationLimit)
	services := service.NewServices(store, st, cfg, logger)
	if err := services.Init(ctx); err != nil {
		return err
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub(services.Draft, logger)
	go hub.Run()
	defer hub.Stop()
	hub.Attach(services)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      api.NewRouter(services, hub, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if watcher, ok := store.(repository.Watcher); ok && cfg.WatchDataDir {
		g.Go(func() error {
			return watcher.Watch(gctx, func(key string) {
				if err := services.ExternalChange(gctx, key); err != nil {
					logger.Error("failed to reload after external change",
						zap.String("key", key), zap.Error(err))
				}
			})
		})
	}

	err = g.Wait()
	logger.Info("server stopped")
	return err
}

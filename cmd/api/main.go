package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaysadin/wedding-seating-api/internal/assets"
	"github.com/shaysadin/wedding-seating-api/internal/config"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
	"github.com/shaysadin/wedding-seating-api/internal/server"
	"github.com/shaysadin/wedding-seating-api/internal/storage"
)

func main() {
	cfg := config.Load()

	logger.Initialize(os.Getenv("LOG_LEVEL"))
	log := logger.Get()

	repos, err := storage.DefaultFactory().CreateContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	defer repos.Close()

	// The asset store is optional: the API runs without object storage, just
	// with the asset endpoints disabled.
	var assetStore *assets.Store
	storeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	assetStore, err = assets.NewStore(storeCtx, cfg)
	cancel()
	if err != nil {
		log.Warn("Object store unavailable, asset endpoints disabled", "error", err)
		assetStore = nil
	}

	srv := server.New(cfg, repos, assetStore)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}

	log.Info("Server stopped")
}

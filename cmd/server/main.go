package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mbaymi-backend/internal/config"
	"mbaymi-backend/internal/database"
	"mbaymi-backend/internal/metrics"
	"mbaymi-backend/internal/news"
	"mbaymi-backend/internal/server"
	"mbaymi-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("upload storage unavailable", "error", err)
		os.Exit(1)
	}

	app := server.New(server.Deps{
		Config:  cfg,
		DB:      db,
		Store:   store,
		News:    news.NewAggregator(&http.Client{Timeout: cfg.NewsTimeout}, news.DefaultFeeds),
		Metrics: metrics.New(),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("listening", "port", cfg.HTTPPort, "origins", cfg.AllowedOrigins)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if !cfg.Minio.Enabled() {
		return storage.NewLocalStore(cfg.UploadDir)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("using minio for uploads", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
	return storage.NewMinioStore(ctx, cfg.Minio)
}

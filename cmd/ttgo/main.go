package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/ttgo/docs"
	"github.com/kirinyoku/ttgo/internal/app"
	"github.com/kirinyoku/ttgo/internal/config"
)

// @title TTGo API
// @version 1.0
// @description Club live event timetables: roster, running order generation, drag editing and publishing.
// @host localhost:8080
// @BasePath /
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}

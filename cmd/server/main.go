package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/common-nighthawk/go-figure"

	"go-ticket-tracker/internal/app"
	"go-ticket-tracker/internal/config"
	"go-ticket-tracker/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel))

	if cfg.LogFormat != logger.FormatJSON {
		figure.NewFigure(cfg.AppName, "cybermedium", true).Print()
	}

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

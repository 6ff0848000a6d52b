package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"skywatch.app/internal/app"
	"skywatch.app/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}
	logger.Install(os.Getenv("LOG_LEVEL"))

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Warn("Error during shutdown", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Configuration loaded successfully",
		"port", application.Config().Server.Port,
		"locations", len(application.Locations()))

	if err := application.Serve(ctx); err != nil {
		slog.Error("Preview server failed", "error", err)
		stop()
		_ = application.Close()
		os.Exit(1)
	}
}

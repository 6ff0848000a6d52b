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
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}
	logger.Install(os.Getenv("LOG_LEVEL"))

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	result, err := application.Run(ctx)
	stop()

	if closeErr := application.Close(); closeErr != nil {
		slog.Warn("Error during shutdown", "error", closeErr)
	}
	if err != nil {
		slog.Error("Notification run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Notification run finished",
		"run_id", result.RunID,
		"qualifying", result.QualifyingNames(),
		"sent", result.Sent)
}

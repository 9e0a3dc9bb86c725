package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"steam-library-service/internal/bot"
	"steam-library-service/internal/logging"
)

const defaultAPIURL = "http://127.0.0.1:5000"

func main() {
	if os.Getenv("SKIP_BOT_RUN") == "1" {
		return
	}

	_ = godotenv.Load()

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "steam-library-bot",
		Version: "dev",
	})

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		logger.Error("DISCORD_BOT_TOKEN is not set")
		os.Exit(1)
	}

	apiURL := os.Getenv("LIBRARY_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	b, err := bot.New(token, apiURL, logger)
	if err != nil {
		logger.Error("failed to build bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		logger.Error("bot exited with error", "error", err)
		os.Exit(1)
	}
}

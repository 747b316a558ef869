package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pauljones0/rawg-discord-bot/internal/catalog"
	"github.com/pauljones0/rawg-discord-bot/internal/config"
	"github.com/pauljones0/rawg-discord-bot/internal/notifier"
	"github.com/pauljones0/rawg-discord-bot/internal/runner"
)

// The process always exits 0: failures along the pipeline are printed,
// not signaled, so a cron wrapper never has to special-case a bad run.
func main() {
	slog.Info("Games to Discord Webhook")

	settings, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		return
	}

	store := &config.Store{
		Path:   settings.ConfigPath,
		Source: &config.PromptSource{In: os.Stdin, Out: os.Stdout},
	}
	creds, err := store.Load()
	if err != nil {
		slog.Error("Error loading credentials", "error", err)
		return
	}
	if err := creds.Validate(); err != nil {
		slog.Error("Missing API key or webhook URL. Please update the configuration.", "error", err)
		return
	}

	r := runner.New(catalog.New(creds.APIKey), notifier.New(creds.WebhookURL), settings)
	if err := r.Run(context.Background()); err != nil {
		slog.Error("Run finished with errors", "error", err)
	}
}

package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/pauljones0/rawg-discord-bot/internal/config"
	"github.com/pauljones0/rawg-discord-bot/internal/models"
	"github.com/pauljones0/rawg-discord-bot/internal/notifier"
)

// Catalog abstracts the release-data source.
type Catalog interface {
	UpcomingGames(ctx context.Context, windowDays, pageSize int) ([]models.Game, error)
	GameScreenshot(ctx context.Context, gameID int) (string, error)
}

// Publisher abstracts webhook delivery.
type Publisher interface {
	Publish(ctx context.Context, payload notifier.WebhookPayload) error
}

// Runner executes one fetch-format-publish pass.
type Runner struct {
	catalog   Catalog
	publisher Publisher
	settings  *config.Settings
}

func New(catalog Catalog, publisher Publisher, settings *config.Settings) *Runner {
	return &Runner{catalog: catalog, publisher: publisher, settings: settings}
}

// Run performs the pipeline once. A failed or empty fetch ends the run
// quietly; only a failed publish is reported back as an error.
func (r *Runner) Run(ctx context.Context) error {
	slog.Info("Fetching upcoming games...")
	games, err := r.catalog.UpcomingGames(ctx, r.settings.WindowDays, r.settings.PageSize)
	if err != nil {
		slog.Error("Error fetching games from RAWG.io", "error", err)
		games = nil
	}
	if len(games) == 0 {
		slog.Info("No games found or error occurred.")
		return nil
	}
	slog.Info("Found upcoming games", "count", len(games))

	var screenshots map[int]string
	if r.settings.IncludeScreenshots {
		screenshots = r.fetchScreenshots(ctx, games)
	}

	slog.Info("Formatting message for Discord...")
	payload := notifier.BuildMessage(games, screenshots, r.settings.IncludeScreenshots, time.Now())

	slog.Info("Sending message to Discord...")
	if err := r.publisher.Publish(ctx, payload); err != nil {
		slog.Error("Failed to send message to Discord", "error", err)
		return err
	}
	slog.Info("Success! Message sent to Discord.")
	return nil
}

// fetchScreenshots performs one blocking lookup per game, in list order.
// A failed or empty lookup just leaves that game without an image.
func (r *Runner) fetchScreenshots(ctx context.Context, games []models.Game) map[int]string {
	slog.Info("Fetching screenshots for games...")
	screenshots := make(map[int]string)
	for _, game := range games {
		if game.ID == 0 {
			continue
		}
		imageURL, err := r.catalog.GameScreenshot(ctx, game.ID)
		if err != nil {
			slog.Warn("Error fetching screenshot", "game", game.Name, "error", err)
			continue
		}
		if imageURL == "" {
			slog.Info("No screenshot found", "game", game.Name)
			continue
		}
		screenshots[game.ID] = imageURL
	}
	slog.Info("Screenshot lookup finished", "found", len(screenshots), "games", len(games))
	return screenshots
}

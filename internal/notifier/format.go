package notifier

import (
	"strings"
	"time"

	"github.com/pauljones0/rawg-discord-bot/internal/models"
)

const (
	colorHeader = 0x7289DA // Discord blurple
	colorGame   = 0x3498DB

	// Discord rejects messages with more than 10 embeds. Screenshot mode
	// spends one on the header, leaving room for 9 games.
	maxEmbeds     = 10
	maxGameEmbeds = maxEmbeds - 1
)

const noGamesContent = "No upcoming games found!"

// BuildMessage turns catalog records into a webhook payload. screenshots
// maps game IDs to image URLs and is only consulted when includeScreenshots
// is set; games beyond the embed limit are dropped in that mode.
func BuildMessage(games []models.Game, screenshots map[int]string, includeScreenshots bool, now time.Time) WebhookPayload {
	if len(games) == 0 {
		return WebhookPayload{Content: noGamesContent}
	}
	if includeScreenshots {
		return buildScreenshotMessage(games, screenshots, now)
	}
	return buildSummaryMessage(games, now)
}

// buildSummaryMessage packs every game into one embed, one field per game.
func buildSummaryMessage(games []models.Game, now time.Time) WebhookPayload {
	embed := Embed{
		Title:       "🎮 Upcoming Game Releases 🎮",
		Color:       colorHeader,
		Description: "Here are the upcoming game releases:",
		Footer:      generatedFooter(now),
	}
	for _, game := range games {
		value := "📅 Release Date: **" + releaseDate(game) + "**"
		if platforms := platformList(game); platforms != "" {
			value += "\n🎮 Platforms: " + platforms
		}
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "**" + gameName(game) + "**",
			Value: value,
		})
	}
	return WebhookPayload{Embeds: []Embed{embed}}
}

// buildScreenshotMessage emits a header embed plus one embed per game so
// each game can carry its own image.
func buildScreenshotMessage(games []models.Game, screenshots map[int]string, now time.Time) WebhookPayload {
	embeds := []Embed{{
		Title:       "🎮 Upcoming Game Releases 🎮",
		Color:       colorHeader,
		Description: "Here are the upcoming game releases with screenshots:",
		Footer:      generatedFooter(now),
	}}

	if len(games) > maxGameEmbeds {
		games = games[:maxGameEmbeds]
	}
	for _, game := range games {
		embed := Embed{
			Title: gameName(game),
			Color: colorGame,
			Fields: []EmbedField{{
				Name:   "Release Date",
				Value:  "📅 **" + releaseDate(game) + "**",
				Inline: true,
			}},
		}
		if platforms := platformList(game); platforms != "" {
			embed.Fields = append(embed.Fields, EmbedField{
				Name:   "Platforms",
				Value:  "🎮 " + platforms,
				Inline: true,
			})
		}
		if imageURL := screenshots[game.ID]; imageURL != "" {
			embed.Image = &EmbedImage{URL: imageURL}
		} else {
			embed.Footer = &EmbedFooter{Text: "No screenshot available for this game"}
		}
		embeds = append(embeds, embed)
	}
	return WebhookPayload{Embeds: embeds}
}

func gameName(game models.Game) string {
	if game.Name == "" {
		return "Unknown Title"
	}
	return game.Name
}

func releaseDate(game models.Game) string {
	if game.Released == "" {
		return "TBA"
	}
	return game.Released
}

func platformList(game models.Game) string {
	names := make([]string, 0, len(game.Platforms))
	for _, name := range game.Platforms {
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func generatedFooter(now time.Time) *EmbedFooter {
	return &EmbedFooter{Text: "Data from RAWG.io • Generated on " + now.Format("2006-01-02 15:04:05")}
}

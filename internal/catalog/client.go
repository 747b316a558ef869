package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pauljones0/rawg-discord-bot/internal/models"
)

// DefaultBaseURL is the production RAWG.io API root.
const DefaultBaseURL = "https://api.rawg.io/api"

// Client talks to the RAWG.io REST API.
type Client struct {
	// BaseURL can be pointed at a local server in tests.
	BaseURL string

	apiKey     string
	httpClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Wire shapes. RAWG wraps every listing in a "results" array and nests each
// platform name one level down.
type gameListResponse struct {
	Results []gameResult `json:"results"`
}

type gameResult struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Released  string          `json:"released"`
	Platforms []platformEntry `json:"platforms"`
}

type platformEntry struct {
	Platform struct {
		Name string `json:"name"`
	} `json:"platform"`
}

type screenshotListResponse struct {
	Results []struct {
		Image string `json:"image"`
	} `json:"results"`
}

// UpcomingGames returns releases scheduled within the next windowDays days,
// soonest first, at most pageSize of them.
func (c *Client) UpcomingGames(ctx context.Context, windowDays, pageSize int) ([]models.Game, error) {
	today := time.Now()
	future := today.AddDate(0, 0, windowDays)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("dates", today.Format("2006-01-02")+","+future.Format("2006-01-02"))
	params.Set("ordering", "released")
	params.Set("page_size", strconv.Itoa(pageSize))

	var resp gameListResponse
	if err := c.get(ctx, c.BaseURL+"/games?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching upcoming games: %w", err)
	}

	games := make([]models.Game, 0, len(resp.Results))
	for _, r := range resp.Results {
		game := models.Game{ID: r.ID, Name: r.Name, Released: r.Released}
		for _, p := range r.Platforms {
			if p.Platform.Name != "" {
				game.Platforms = append(game.Platforms, p.Platform.Name)
			}
		}
		games = append(games, game)
	}
	return games, nil
}

// GameScreenshot returns the first screenshot URL for a game, or "" when
// the game has none.
func (c *Client) GameScreenshot(ctx context.Context, gameID int) (string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/games/%d/screenshots?%s", c.BaseURL, gameID, params.Encode())
	var resp screenshotListResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return "", fmt.Errorf("fetching screenshots for game %d: %w", gameID, err)
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return resp.Results[0].Image, nil
}

// get performs a GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

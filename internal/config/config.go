package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultConfigPath = "games_discord_config.json"
	defaultWindowDays = 180
	defaultPageSize   = 20
)

// Settings holds the runtime knobs read from the environment. Credentials
// live in their own file-backed store; see credentials.go.
type Settings struct {
	ConfigPath         string
	WindowDays         int
	PageSize           int
	IncludeScreenshots bool
}

// Load reads settings from the environment after a best-effort .env load.
// Malformed numeric values are hard errors rather than silent defaults.
func Load() (*Settings, error) {
	// .env is optional; deployments normally use the process environment.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	windowDays := defaultWindowDays
	if v := os.Getenv("RELEASE_WINDOW_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid RELEASE_WINDOW_DAYS %q: must be a positive integer", v)
		}
		windowDays = parsed
	}

	pageSize := defaultPageSize
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid PAGE_SIZE %q: must be a positive integer", v)
		}
		pageSize = parsed
	}

	return &Settings{
		ConfigPath:         configPath,
		WindowDays:         windowDays,
		PageSize:           pageSize,
		IncludeScreenshots: os.Getenv("INCLUDE_SCREENSHOTS") == "true",
	}, nil
}

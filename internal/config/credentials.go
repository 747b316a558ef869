package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials are the two secrets the bot needs. They are persisted as a
// small JSON file so runs after the first interactive one stay quiet.
type Credentials struct {
	APIKey     string `json:"rawg_api_key" validate:"required"`
	WebhookURL string `json:"discord_webhook_url" validate:"required"`
}

// Validate reports whether both credentials are present. Format checking is
// deliberately left to RAWG and Discord to reject.
func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// CredentialSource supplies credentials when no usable config file exists.
type CredentialSource interface {
	Credentials() (Credentials, error)
}

// PromptSource collects credentials interactively, one line per value.
type PromptSource struct {
	In  io.Reader
	Out io.Writer
}

func (p *PromptSource) Credentials() (Credentials, error) {
	scanner := bufio.NewScanner(p.In)
	apiKey, err := p.ask(scanner, "Enter your RAWG.io API key: ")
	if err != nil {
		return Credentials{}, err
	}
	webhookURL, err := p.ask(scanner, "Enter your Discord webhook URL: ")
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{APIKey: apiKey, WebhookURL: webhookURL}, nil
}

func (p *PromptSource) ask(scanner *bufio.Scanner, prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", fmt.Errorf("input closed before a value was entered")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// Store resolves credentials from the environment, then the config file,
// then the fallback source, persisting whatever the source returns.
type Store struct {
	Path   string
	Source CredentialSource
}

// Load returns usable credentials. RAWG_API_KEY and DISCORD_WEBHOOK_URL in
// the environment win over the file so non-interactive deployments never
// touch disk. A corrupt file is reported and treated the same as a missing
// one.
func (s *Store) Load() (Credentials, error) {
	if key, webhook := os.Getenv("RAWG_API_KEY"), os.Getenv("DISCORD_WEBHOOK_URL"); key != "" && webhook != "" {
		return Credentials{APIKey: key, WebhookURL: webhook}, nil
	}

	data, err := os.ReadFile(s.Path)
	switch {
	case err == nil:
		var creds Credentials
		jsonErr := json.Unmarshal(data, &creds)
		if jsonErr == nil {
			return creds, nil
		}
		slog.Warn("Config file is corrupted. Creating a new one.", "path", s.Path, "error", jsonErr)
	case !os.IsNotExist(err):
		return Credentials{}, fmt.Errorf("reading config file %s: %w", s.Path, err)
	}

	creds, err := s.Source.Credentials()
	if err != nil {
		return Credentials{}, fmt.Errorf("collecting credentials: %w", err)
	}
	if err := s.save(creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (s *Store) save(creds Credentials) error {
	data, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", s.Path, err)
	}
	return nil
}

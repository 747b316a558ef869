package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- Settings ---

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("RELEASE_WINDOW_DAYS", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("INCLUDE_SCREENSHOTS", "")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if settings.ConfigPath != "games_discord_config.json" {
		t.Errorf("Expected default config path, got %s", settings.ConfigPath)
	}
	if settings.WindowDays != 180 {
		t.Errorf("Expected default window of 180 days, got %d", settings.WindowDays)
	}
	if settings.PageSize != 20 {
		t.Errorf("Expected default page size 20, got %d", settings.PageSize)
	}
	if settings.IncludeScreenshots {
		t.Error("Expected screenshots to default to off")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("CONFIG_PATH", "custom.json")
	t.Setenv("RELEASE_WINDOW_DAYS", "90")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("INCLUDE_SCREENSHOTS", "true")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if settings.ConfigPath != "custom.json" {
		t.Errorf("Expected custom.json, got %s", settings.ConfigPath)
	}
	if settings.WindowDays != 90 {
		t.Errorf("Expected 90, got %d", settings.WindowDays)
	}
	if settings.PageSize != 5 {
		t.Errorf("Expected 5, got %d", settings.PageSize)
	}
	if !settings.IncludeScreenshots {
		t.Error("Expected screenshots to be enabled")
	}
}

func TestLoad_InvalidWindowDays(t *testing.T) {
	t.Setenv("RELEASE_WINDOW_DAYS", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid RELEASE_WINDOW_DAYS")
	}
}

func TestLoad_NegativePageSize(t *testing.T) {
	t.Setenv("RELEASE_WINDOW_DAYS", "")
	t.Setenv("PAGE_SIZE", "-3")

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for negative PAGE_SIZE")
	}
}

// --- Credentials store ---

type fakeSource struct {
	creds  Credentials
	err    error
	called bool
}

func (f *fakeSource) Credentials() (Credentials, error) {
	f.called = true
	return f.creds, f.err
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RAWG_API_KEY", "")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
}

func TestStoreLoad_ValidFile(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{"rawg_api_key": "abc", "discord_webhook_url": "https://discord.test/hook"}`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	source := &fakeSource{}
	store := &Store{Path: path, Source: source}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if creds.APIKey != "abc" || creds.WebhookURL != "https://discord.test/hook" {
		t.Errorf("Loaded wrong credentials: %+v", creds)
	}
	if source.called {
		t.Error("Source should not be consulted when the file is valid")
	}
}

func TestStoreLoad_CorruptFileFallsBackToSource(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	source := &fakeSource{creds: Credentials{APIKey: "fresh-key", WebhookURL: "https://discord.test/new"}}
	store := &Store{Path: path, Source: source}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load() should recover from a corrupt file, got error: %v", err)
	}
	if creds.APIKey != "fresh-key" {
		t.Errorf("Expected source credentials, got %+v", creds)
	}
	if !source.called {
		t.Error("Source should be consulted when the file is corrupt")
	}

	// The corrupt file must have been replaced with a parseable one.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var persisted Credentials
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("Rewritten config does not parse: %v", err)
	}
	if persisted != creds {
		t.Errorf("Persisted %+v, want %+v", persisted, creds)
	}
}

func TestStoreLoad_MissingFilePromptsAndPersists(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")

	source := &fakeSource{creds: Credentials{APIKey: "k", WebhookURL: "https://discord.test/hook"}}
	store := &Store{Path: path, Source: source}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if creds != source.creds {
		t.Errorf("Expected source credentials, got %+v", creds)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file should have been written: %v", err)
	}
}

func TestStoreLoad_EnvOverride(t *testing.T) {
	t.Setenv("RAWG_API_KEY", "env-key")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.test/env")
	path := filepath.Join(t.TempDir(), "config.json")

	source := &fakeSource{}
	store := &Store{Path: path, Source: source}

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if creds.APIKey != "env-key" || creds.WebhookURL != "https://discord.test/env" {
		t.Errorf("Expected env credentials, got %+v", creds)
	}
	if source.called {
		t.Error("Source should not run when both env vars are set")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Env override should not create a config file")
	}
}

func TestStoreLoad_SourceError(t *testing.T) {
	clearCredentialEnv(t)
	source := &fakeSource{err: errors.New("stdin closed")}
	store := &Store{Path: filepath.Join(t.TempDir(), "config.json"), Source: source}

	if _, err := store.Load(); err == nil {
		t.Error("Load() should propagate source errors")
	}
}

// --- PromptSource ---

func TestPromptSource(t *testing.T) {
	in := strings.NewReader("  my-key  \nhttps://discord.test/hook\n")
	var out bytes.Buffer
	source := &PromptSource{In: in, Out: &out}

	creds, err := source.Credentials()
	if err != nil {
		t.Fatalf("Credentials() returned unexpected error: %v", err)
	}
	if creds.APIKey != "my-key" {
		t.Errorf("Expected trimmed key, got %q", creds.APIKey)
	}
	if creds.WebhookURL != "https://discord.test/hook" {
		t.Errorf("Got webhook %q", creds.WebhookURL)
	}
	if !strings.Contains(out.String(), "RAWG.io API key") || !strings.Contains(out.String(), "Discord webhook URL") {
		t.Errorf("Prompts missing from output: %q", out.String())
	}
}

func TestPromptSource_InputClosed(t *testing.T) {
	source := &PromptSource{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	if _, err := source.Credentials(); err == nil {
		t.Error("Credentials() should fail when input ends early")
	}
}

// --- Validation ---

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"Both present", Credentials{APIKey: "k", WebhookURL: "https://discord.test/hook"}, false},
		{"Missing key", Credentials{WebhookURL: "https://discord.test/hook"}, true},
		{"Missing webhook", Credentials{APIKey: "k"}, true},
		{"Both missing", Credentials{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected AI provider gemini, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Expected model gemini-2.5-flash, got %s", cfg.AI.Model)
	}
	if cfg.Splash.Step != 2 || cfg.Splash.TickInterval != 40*time.Millisecond {
		t.Errorf("Expected splash step 2 every 40ms, got %d every %v", cfg.Splash.Step, cfg.Splash.TickInterval)
	}
	if cfg.Splash.HandoffDelay != 500*time.Millisecond {
		t.Errorf("Expected handoff delay 500ms, got %v", cfg.Splash.HandoffDelay)
	}
	if cfg.Splash.RetryDelay != time.Second {
		t.Errorf("Expected retry delay 1s, got %v", cfg.Splash.RetryDelay)
	}
	if cfg.UI.LoadingDelay != 2*time.Second {
		t.Errorf("Expected loading delay 2s, got %v", cfg.UI.LoadingDelay)
	}
	if cfg.Storage.PersistSaved {
		t.Error("Expected saved listings to be session-only by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:   "invalid AI provider",
			modify: func(c *Config) { c.AI.Provider = "anthropic" },
			errMsg: "invalid AI provider: anthropic (must be one of: gemini, openai, ollama)",
		},
		{
			name:   "negative retries",
			modify: func(c *Config) { c.AI.MaxRetries = -1 },
			errMsg: "max_retries must be non-negative",
		},
		{
			name:   "invalid output format",
			modify: func(c *Config) { c.Output.DefaultFormat = "xml" },
			errMsg: "invalid output format: xml (must be one of: text, json, markdown, csv)",
		},
		{
			name:   "invalid color mode",
			modify: func(c *Config) { c.UI.ColorMode = "sometimes" },
			errMsg: "invalid color mode: sometimes (must be one of: auto, always, never)",
		},
		{
			name:   "invalid theme hint",
			modify: func(c *Config) { c.UI.ThemeHint = "sepia" },
			errMsg: "invalid theme hint: sepia (must be one of: auto, dark, light)",
		},
		{
			name:   "zero splash step",
			modify: func(c *Config) { c.Splash.Step = 0 },
			errMsg: "splash step must be between 1 and 100",
		},
		{
			name:   "zero tick interval",
			modify: func(c *Config) { c.Splash.TickInterval = 0 },
			errMsg: "tick_interval must be greater than 0",
		},
		{
			name:   "negative retry delay",
			modify: func(c *Config) { c.Splash.RetryDelay = -time.Second },
			errMsg: "retry_delay must be non-negative",
		},
		{
			name:   "tiny thumbnails",
			modify: func(c *Config) { c.Storage.ThumbnailSize = 4 },
			errMsg: "thumbnail_size must be at least 16",
		},
		{
			name:   "no data dir",
			modify: func(c *Config) { c.Storage.DataDir = "" },
			errMsg: "data_dir is required",
		},
		{
			name: "no data dir with explicit files",
			modify: func(c *Config) {
				c.Storage.DataDir = ""
				c.Storage.DBPath = "/tmp/ethio.db"
				c.Log.File = "/tmp/ethio.log"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.DataDir = "/var/lib/ethio"

	if got := cfg.DatabasePath(); got != filepath.Join("/var/lib/ethio", "ethio.db") {
		t.Errorf("Unexpected database path %s", got)
	}
	if got := cfg.LogPath(); got != filepath.Join("/var/lib/ethio", "ethio.log") {
		t.Errorf("Unexpected log path %s", got)
	}
	if got := cfg.CatalogPath(); got != "" {
		t.Errorf("Expected empty catalog path, got %s", got)
	}

	cfg.Storage.DBPath = "/data/app.db"
	cfg.Log.File = "/data/app.log"
	cfg.Catalog.Path = "/data/catalog.yaml"
	if cfg.DatabasePath() != "/data/app.db" || cfg.LogPath() != "/data/app.log" || cfg.CatalogPath() != "/data/catalog.yaml" {
		t.Error("Explicit paths should be used verbatim")
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("./config.yaml"); got != "./config.yaml" {
		t.Errorf("Expected relative path unchanged, got %s", got)
	}
	if got := expandPath("/etc/ethio/config.yaml"); got != "/etc/ethio/config.yaml" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
	if got := expandPath("~/.config/ethio/config.yaml"); got == "~/.config/ethio/config.yaml" {
		t.Error("Expected path to be expanded, but got same path")
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != 3 {
		t.Fatalf("Expected 3 config paths, got %d", len(paths))
	}
	if paths[0] != "./.ethio.yaml" {
		t.Errorf("Expected project config first, got %s", paths[0])
	}
	if strings.HasPrefix(paths[1], "~") {
		t.Errorf("Expected user path to be expanded, got %s", paths[1])
	}
	if paths[2] != "/etc/ethio/config.yaml" {
		t.Errorf("Expected system config last, got %s", paths[2])
	}
}

func TestSampleConfigsParse(t *testing.T) {
	for name, sample := range map[string]string{"full": SampleConfig(), "minimal": MinimalSampleConfig()} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample.yaml")
			writeFile(t, path, sample)

			cfg, err := NewLoader().LoadConfig(path)
			if err != nil {
				t.Fatalf("Sample config should load: %v", err)
			}
			if cfg.AI.Provider != "gemini" {
				t.Errorf("Expected gemini provider, got %s", cfg.AI.Provider)
			}
		})
	}
}

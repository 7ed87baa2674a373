package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func testLoader(paths ...string) (*Loader, *bytes.Buffer) {
	var warnings bytes.Buffer
	return &Loader{configPaths: paths, warnings: &warnings}, &warnings
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader, _ := testLoader(filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected default AI provider gemini, got %s", cfg.AI.Provider)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.yaml")
	writeFile(t, configPath, `version: "1.0"
ai:
  provider: "openai"
  model: "gpt-4o-mini"
  timeout: 60s
storage:
  persist_saved: true
splash:
  retry_delay: 3s
ui:
  theme_hint: dark
  no_emoji: true
output:
  default_format: "json"
`)

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.AI.Provider != "openai" {
		t.Errorf("Expected AI provider openai, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("Expected AI model gpt-4o-mini, got %s", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("Expected AI timeout 60s, got %v", cfg.AI.Timeout)
	}
	if !cfg.Storage.PersistSaved {
		t.Error("Expected persist_saved to be true")
	}
	if cfg.Splash.RetryDelay != 3*time.Second {
		t.Errorf("Expected retry delay 3s, got %v", cfg.Splash.RetryDelay)
	}
	if cfg.Splash.HandoffDelay != 500*time.Millisecond {
		t.Errorf("Expected untouched handoff delay to keep its default, got %v", cfg.Splash.HandoffDelay)
	}
	if cfg.UI.ThemeHint != "dark" || !cfg.UI.NoEmoji {
		t.Errorf("Expected ui overrides, got %+v", cfg.UI)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project.yaml")
	system := filepath.Join(dir, "system.yaml")

	writeFile(t, system, `ai:
  provider: ollama
  model: llama3.2
storage:
  persist_saved: true
`)
	writeFile(t, project, `ai:
  model: mistral
storage:
  persist_saved: false
`)

	loader, warnings := testLoader(project, system)
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.Provider != "ollama" {
		t.Errorf("Expected provider from system config, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "mistral" {
		t.Errorf("Expected project config to win, got %s", cfg.AI.Model)
	}
	if cfg.Storage.PersistSaved {
		t.Error("Expected project config to switch persist_saved off")
	}
	if warnings.Len() != 0 {
		t.Errorf("Unexpected warnings: %s", warnings.String())
	}
}

func TestLoadConfigBrokenFileWarns(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "ai: [unterminated")

	loader, warnings := testLoader(broken)
	if _, err := loader.LoadConfig(""); err != nil {
		t.Fatalf("A broken search-path file should only warn: %v", err)
	}
	if !strings.Contains(warnings.String(), "Warning: Failed to load config") {
		t.Errorf("Expected a warning, got %q", warnings.String())
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid-config.yaml")
	writeFile(t, configPath, `version: "1.0"
output:
  default_format: "json
`)

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, "ai:\n  provider: anthropic\n")

	_, err := NewLoader().LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ETHIO_AI_PROVIDER", "ollama")
	t.Setenv("ETHIO_AI_MODEL", "llama3.2")
	t.Setenv("ETHIO_STORAGE_PERSIST_SAVED", "true")
	t.Setenv("ETHIO_SPLASH_TICK_INTERVAL", "10ms")
	t.Setenv("ETHIO_SPLASH_STEP", "5")
	t.Setenv("ETHIO_CATALOG_PATH", "/tmp/catalog.yaml")
	t.Setenv("ETHIO_LOG_VERBOSE", "1")

	cfg := DefaultConfig()
	if err := NewLoader().applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.AI.Provider != "ollama" || cfg.AI.Model != "llama3.2" {
		t.Errorf("Expected ollama/llama3.2, got %s/%s", cfg.AI.Provider, cfg.AI.Model)
	}
	if !cfg.Storage.PersistSaved {
		t.Error("Expected persist_saved to be true")
	}
	if cfg.Splash.TickInterval != 10*time.Millisecond || cfg.Splash.Step != 5 {
		t.Errorf("Unexpected splash settings %+v", cfg.Splash)
	}
	if cfg.Catalog.Path != "/tmp/catalog.yaml" {
		t.Errorf("Expected catalog path override, got %s", cfg.Catalog.Path)
	}
	if !cfg.Log.Verbose {
		t.Error("Expected verbose logging")
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "ETHIO_SPLASH_STEP", "not-a-number"},
		{"invalid bool", "ETHIO_STORAGE_PERSIST_SAVED", "not-a-bool"},
		{"invalid duration", "ETHIO_AI_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			err := NewLoader().applyEnvOverrides(DefaultConfig())
			if err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestCredentialFallbacks(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "generic-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg := DefaultConfig()
	applyCredentialFallbacks(cfg)
	if cfg.AI.APIKey != "generic-key" {
		t.Errorf("Expected API_KEY fallback for gemini, got %q", cfg.AI.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg = DefaultConfig()
	applyCredentialFallbacks(cfg)
	if cfg.AI.APIKey != "gemini-key" {
		t.Errorf("Expected GEMINI_API_KEY to win, got %q", cfg.AI.APIKey)
	}

	cfg = DefaultConfig()
	cfg.AI.Provider = "openai"
	applyCredentialFallbacks(cfg)
	if cfg.AI.APIKey != "openai-key" {
		t.Errorf("Expected OPENAI_API_KEY, got %q", cfg.AI.APIKey)
	}

	cfg = DefaultConfig()
	cfg.AI.APIKey = "configured"
	applyCredentialFallbacks(cfg)
	if cfg.AI.APIKey != "configured" {
		t.Errorf("Configured key should not be replaced, got %q", cfg.AI.APIKey)
	}

	cfg = DefaultConfig()
	cfg.AI.Provider = "ollama"
	applyCredentialFallbacks(cfg)
	if cfg.AI.APIKey != "" {
		t.Errorf("Ollama needs no key, got %q", cfg.AI.APIKey)
	}
}

func TestParseHelpers(t *testing.T) {
	var d time.Duration
	if err := parseDuration("30s", &d); err != nil || d != 30*time.Second {
		t.Errorf("parseDuration(30s) = %v, %v", d, err)
	}
	if err := parseDuration("invalid", &d); err == nil {
		t.Error("Expected error for invalid duration")
	}

	var n int
	if err := parseInt("42", &n); err != nil || n != 42 {
		t.Errorf("parseInt(42) = %d, %v", n, err)
	}
	if err := parseInt("x", &n); err == nil {
		t.Error("Expected error for invalid int")
	}

	var b bool
	if err := parseBool("true", &b); err != nil || !b {
		t.Errorf("parseBool(true) = %v, %v", b, err)
	}
	if err := parseBool("nope", &b); err == nil {
		t.Error("Expected error for invalid bool")
	}
}

func TestFileExists(t *testing.T) {
	if fileExists("/path/that/does/not/exist") {
		t.Error("Expected file to not exist, but fileExists returned true")
	}

	tempFile := filepath.Join(t.TempDir(), "test-file")
	writeFile(t, tempFile, "test")
	if !fileExists(tempFile) {
		t.Error("Expected file to exist, but fileExists returned false")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid yaml file", path: "config.yaml"},
		{name: "valid yml file", path: "config.yml"},
		{name: "relative path with valid extension", path: "./configs/app.yaml"},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

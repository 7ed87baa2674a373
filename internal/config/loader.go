package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.ethio.yaml",               // Project-specific config (highest priority)
	"~/.config/ethio/config.yaml", // User config
	"/etc/ethio/config.yaml",      // System config (lowest priority)
}

// credentialFallbacks are consulted, per provider, when no API key is configured
var credentialFallbacks = map[string][]string{
	"gemini": {"GEMINI_API_KEY", "API_KEY"},
	"openai": {"OPENAI_API_KEY", "API_KEY"},
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	warnings    io.Writer
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		warnings:    os.Stderr,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.ethio.yaml
// 4. ~/.config/ethio/config.yaml
// 5. /etc/ethio/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(l.warnings, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	applyCredentialFallbacks(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file on top of config. Keys absent from the
// file keep their current value, so booleans can be switched off explicitly.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	overlay := *config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*config = overlay
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"ETHIO_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"ETHIO_AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"ETHIO_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"ETHIO_AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"ETHIO_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"ETHIO_AI_MAX_RETRIES": func(v string) error { return parseInt(v, &config.AI.MaxRetries) },

		// Storage Config
		"ETHIO_STORAGE_DATA_DIR":       func(v string) error { config.Storage.DataDir = v; return nil },
		"ETHIO_STORAGE_DB_PATH":        func(v string) error { config.Storage.DBPath = v; return nil },
		"ETHIO_STORAGE_PERSIST_SAVED":  func(v string) error { return parseBool(v, &config.Storage.PersistSaved) },
		"ETHIO_STORAGE_THUMBNAIL_SIZE": func(v string) error { return parseInt(v, &config.Storage.ThumbnailSize) },

		// Catalog Config
		"ETHIO_CATALOG_PATH":  func(v string) error { config.Catalog.Path = v; return nil },
		"ETHIO_CATALOG_WATCH": func(v string) error { return parseBool(v, &config.Catalog.Watch) },

		// Splash Config
		"ETHIO_SPLASH_STEP":          func(v string) error { return parseInt(v, &config.Splash.Step) },
		"ETHIO_SPLASH_TICK_INTERVAL": func(v string) error { return parseDuration(v, &config.Splash.TickInterval) },
		"ETHIO_SPLASH_HANDOFF_DELAY": func(v string) error { return parseDuration(v, &config.Splash.HandoffDelay) },
		"ETHIO_SPLASH_RETRY_DELAY":   func(v string) error { return parseDuration(v, &config.Splash.RetryDelay) },
		"ETHIO_SPLASH_PROBE_ADDRESS": func(v string) error { config.Splash.ProbeAddress = v; return nil },
		"ETHIO_SPLASH_PROBE_TIMEOUT": func(v string) error { return parseDuration(v, &config.Splash.ProbeTimeout) },

		// UI Config
		"ETHIO_UI_LOADING_DELAY": func(v string) error { return parseDuration(v, &config.UI.LoadingDelay) },
		"ETHIO_UI_THEME_HINT":    func(v string) error { config.UI.ThemeHint = v; return nil },
		"ETHIO_UI_COLOR_MODE":    func(v string) error { config.UI.ColorMode = v; return nil },
		"ETHIO_UI_NO_EMOJI":      func(v string) error { return parseBool(v, &config.UI.NoEmoji) },

		// Output Config
		"ETHIO_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },

		// Log Config
		"ETHIO_LOG_FILE":    func(v string) error { config.Log.File = v; return nil },
		"ETHIO_LOG_VERBOSE": func(v string) error { return parseBool(v, &config.Log.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// applyCredentialFallbacks fills the API key from the provider's conventional
// environment variables
func applyCredentialFallbacks(config *Config) {
	if config.AI.APIKey != "" {
		return
	}
	for _, envVar := range credentialFallbacks[config.AI.Provider] {
		if value := os.Getenv(envVar); value != "" {
			config.AI.APIKey = value
			return
		}
	}
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	return expandPath(path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	AI      AIConfig      `yaml:"ai" json:"ai"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Splash  SplashConfig  `yaml:"splash" json:"splash"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// AIConfig configures the description assistant's text-generation provider
type AIConfig struct {
	Provider   string        `yaml:"provider" json:"provider"`       // gemini|openai|ollama
	Model      string        `yaml:"model" json:"model"`             // model name/identifier
	Endpoint   string        `yaml:"endpoint" json:"endpoint"`       // API endpoint URL, empty for the provider default
	APIKey     string        `yaml:"api_key" json:"api_key"`         // API key
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`         // request timeout
	MaxRetries int           `yaml:"max_retries" json:"max_retries"` // retry count
}

// StorageConfig configures local durable state
type StorageConfig struct {
	DataDir       string `yaml:"data_dir" json:"data_dir"`             // directory for the database and log
	DBPath        string `yaml:"db_path" json:"db_path"`               // sqlite file, defaults to <data_dir>/ethio.db
	PersistSaved  bool   `yaml:"persist_saved" json:"persist_saved"`   // keep saved listings across restarts
	ThumbnailSize int    `yaml:"thumbnail_size" json:"thumbnail_size"` // longest edge of attached photos, in pixels
}

// CatalogConfig configures where listings come from
type CatalogConfig struct {
	Path  string `yaml:"path" json:"path"`   // YAML file overriding the built-in records
	Watch bool   `yaml:"watch" json:"watch"` // reload the file when it changes
}

// SplashConfig configures the startup sequence
type SplashConfig struct {
	Step         int           `yaml:"step" json:"step"`
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval"`
	HandoffDelay time.Duration `yaml:"handoff_delay" json:"handoff_delay"`
	RetryDelay   time.Duration `yaml:"retry_delay" json:"retry_delay"`
	ProbeAddress string        `yaml:"probe_address" json:"probe_address"` // host:port dialled to test connectivity
	ProbeTimeout time.Duration `yaml:"probe_timeout" json:"probe_timeout"`
}

// UIConfig configures the interactive client
type UIConfig struct {
	LoadingDelay time.Duration `yaml:"loading_delay" json:"loading_delay"` // placeholder cards shown after the splash
	ThemeHint    string        `yaml:"theme_hint" json:"theme_hint"`       // auto|dark|light, used when no theme is stored
	ColorMode    string        `yaml:"color_mode" json:"color_mode"`       // auto|always|never
	NoEmoji      bool          `yaml:"no_emoji" json:"no_emoji"`
}

// OutputConfig configures the non-interactive commands
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
}

// LogConfig configures the log file
type LogConfig struct {
	File    string `yaml:"file" json:"file"` // defaults to <data_dir>/ethio.log
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider:   "gemini",
			Model:      "gemini-2.5-flash",
			Endpoint:   "",
			APIKey:     "",
			Timeout:    30 * time.Second,
			MaxRetries: 2,
		},
		Storage: StorageConfig{
			DataDir:       "~/.local/share/ethio",
			PersistSaved:  false,
			ThumbnailSize: 320,
		},
		Splash: SplashConfig{
			Step:         2,
			TickInterval: 40 * time.Millisecond,
			HandoffDelay: 500 * time.Millisecond,
			RetryDelay:   time.Second,
			ProbeAddress: "1.1.1.1:53",
			ProbeTimeout: 2 * time.Second,
		},
		UI: UIConfig{
			LoadingDelay: 2 * time.Second,
			ThemeHint:    "auto",
			ColorMode:    "auto",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
	}
}

// DatabasePath returns the sqlite file location with ~ expanded
func (c *Config) DatabasePath() string {
	if c.Storage.DBPath != "" {
		return expandPath(c.Storage.DBPath)
	}
	return filepath.Join(expandPath(c.Storage.DataDir), "ethio.db")
}

// LogPath returns the log file location with ~ expanded
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return expandPath(c.Log.File)
	}
	return filepath.Join(expandPath(c.Storage.DataDir), "ethio.log")
}

// CatalogPath returns the catalog override with ~ expanded, empty when unset
func (c *Config) CatalogPath() string {
	if c.Catalog.Path == "" {
		return ""
	}
	return expandPath(c.Catalog.Path)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateStorageConfig(); err != nil {
		return err
	}
	if err := c.validateSplashConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" {
		validProviders := map[string]bool{
			"gemini": true,
			"openai": true,
			"ollama": true,
		}
		if !validProviders[c.AI.Provider] {
			return fmt.Errorf("invalid AI provider: %s (must be one of: gemini, openai, ollama)", c.AI.Provider)
		}
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai timeout must be non-negative")
	}
	return nil
}

func (c *Config) validateStorageConfig() error {
	if c.Storage.DataDir == "" && (c.Storage.DBPath == "" || c.Log.File == "") {
		return fmt.Errorf("data_dir is required unless db_path and log file are both set")
	}
	if c.Storage.ThumbnailSize < 16 {
		return fmt.Errorf("thumbnail_size must be at least 16")
	}
	return nil
}

func (c *Config) validateSplashConfig() error {
	if c.Splash.Step < 1 || c.Splash.Step > 100 {
		return fmt.Errorf("splash step must be between 1 and 100")
	}
	if c.Splash.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be greater than 0")
	}
	if c.Splash.HandoffDelay < 0 {
		return fmt.Errorf("handoff_delay must be non-negative")
	}
	if c.Splash.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative")
	}
	if c.Splash.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be greater than 0")
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.LoadingDelay < 0 {
		return fmt.Errorf("loading_delay must be non-negative")
	}
	if c.UI.ThemeHint != "" {
		validHints := map[string]bool{
			"auto":  true,
			"dark":  true,
			"light": true,
		}
		if !validHints[c.UI.ThemeHint] {
			return fmt.Errorf("invalid theme hint: %s (must be one of: auto, dark, light)", c.UI.ThemeHint)
		}
	}
	if c.UI.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.UI.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.UI.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	return nil
}

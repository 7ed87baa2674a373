package gemini

import (
	"fmt"
	"net/url"
	"time"

	"github.com/afrotie/ethio/internal/ai"
)

const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion  = "v1beta"
	DefaultModel       = "gemini-2.5-flash"
	DefaultMaxTokens   = 256
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

type Config struct {
	APIKey             string         `json:"api_key"`
	BaseURL            string         `json:"base_url"`
	APIVersion         string         `json:"api_version"`
	DefaultModel       string         `json:"default_model"`
	MaxTokens          int            `json:"max_tokens"`
	DefaultTemperature float64        `json:"default_temperature"`
	Timeout            time.Duration  `json:"timeout"`
	Retry              ai.RetryPolicy `json:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		APIVersion:         DefaultAPIVersion,
		DefaultModel:       DefaultModel,
		MaxTokens:          DefaultMaxTokens,
		DefaultTemperature: DefaultTemperature,
		Timeout:            DefaultTimeout,
		Retry:              ai.DefaultRetryPolicy(),
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ai.NewConfigurationError("gemini", "api_key", "API key is required")
	}

	if c.BaseURL == "" {
		return ai.NewConfigurationError("gemini", "base_url", "base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return ai.NewConfigurationError("gemini", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	if c.APIVersion == "" {
		return ai.NewConfigurationError("gemini", "api_version", "API version is required")
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError("gemini", "default_model", "default model is required")
	}

	if c.MaxTokens <= 0 {
		return ai.NewConfigurationError("gemini", "max_tokens", "max tokens must be positive")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError("gemini", "default_temperature", "temperature must be between 0 and 2")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("gemini", "timeout", "timeout must be positive")
	}

	return nil
}

package ollama

import (
	"time"

	"github.com/afrotie/ethio/internal/ai"
)

// Config holds Ollama-specific configuration
type Config struct {
	// BaseURL is the Ollama API endpoint
	BaseURL string `json:"base_url"`

	// DefaultModel is used when a request names none
	DefaultModel string `json:"default_model"`

	Timeout time.Duration `json:"timeout"`

	// MaxTokens caps generated tokens (num_predict)
	MaxTokens int `json:"max_tokens"`

	DefaultTemperature float64 `json:"default_temperature"`

	Retry ai.RetryPolicy `json:"-"`
}

// DefaultConfig returns a default Ollama configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "http://localhost:11434",
		DefaultModel:       "llama3.2",
		Timeout:            60 * time.Second,
		MaxTokens:          256,
		DefaultTemperature: 0.7,
		Retry:              ai.DefaultRetryPolicy(),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ai.NewConfigurationError("ollama", "base_url", "base URL is required")
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError("ollama", "default_model", "default model is required")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("ollama", "timeout", "timeout must be positive")
	}

	if c.MaxTokens <= 0 {
		return ai.NewConfigurationError("ollama", "max_tokens", "max tokens must be positive")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 1 {
		return ai.NewConfigurationError("ollama", "default_temperature", "temperature must be between 0 and 1")
	}

	return nil
}

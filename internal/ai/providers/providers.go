// Package providers builds the configured text-generation backend.
package providers

import (
	"fmt"
	"time"

	"github.com/afrotie/ethio/internal/ai"
	"github.com/afrotie/ethio/internal/ai/providers/gemini"
	"github.com/afrotie/ethio/internal/ai/providers/ollama"
	"github.com/afrotie/ethio/internal/ai/providers/openai"
	"github.com/afrotie/ethio/internal/config"
)

// Names lists the supported provider identifiers
var Names = []string{"gemini", "openai", "ollama"}

// New creates the provider selected by cfg. A missing credential yields
// an error for which ai.IsConfigurationError reports true.
func New(cfg config.AIConfig) (ai.Provider, error) {
	retry := ai.DefaultRetryPolicy()
	if cfg.MaxRetries >= 0 {
		retry.MaxRetries = cfg.MaxRetries
	}

	switch cfg.Provider {
	case "gemini", "":
		pc := gemini.DefaultConfig()
		pc.APIKey = cfg.APIKey
		setString(&pc.BaseURL, cfg.Endpoint)
		setString(&pc.DefaultModel, cfg.Model)
		setDuration(&pc.Timeout, cfg.Timeout)
		pc.Retry = retry
		return gemini.New(pc)

	case "openai":
		pc := openai.DefaultConfig()
		pc.APIKey = cfg.APIKey
		setString(&pc.BaseURL, cfg.Endpoint)
		setString(&pc.DefaultModel, cfg.Model)
		setDuration(&pc.Timeout, cfg.Timeout)
		pc.Retry = retry
		return openai.New(pc)

	case "ollama":
		pc := ollama.DefaultConfig()
		setString(&pc.BaseURL, cfg.Endpoint)
		setString(&pc.DefaultModel, cfg.Model)
		setDuration(&pc.Timeout, cfg.Timeout)
		pc.Retry = retry
		return ollama.New(pc)

	default:
		return nil, ai.NewConfigurationError(cfg.Provider, "provider",
			fmt.Sprintf("unsupported provider %q (must be one of: gemini, openai, ollama)", cfg.Provider))
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

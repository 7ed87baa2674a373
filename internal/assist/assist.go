// Package assist writes listing descriptions with a text-generation provider.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	promptfmt "github.com/yildizm/go-promptfmt"

	"github.com/afrotie/ethio/internal/ai"
	"github.com/afrotie/ethio/internal/ai/providers"
	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/config"
	"github.com/afrotie/ethio/internal/logger"
)

// ErrNotConfigured is returned when no provider credential is available
var ErrNotConfigured = errors.New("AI assistant is not configured: set GEMINI_API_KEY or ai.api_key")

// ErrEmptyTitle is returned for requests without a title
var ErrEmptyTitle = errors.New("title is required to write a description")

const (
	defaultFeatures  = "Standard condition"
	defaultMaxTokens = 120
	defaultTimeout   = 30 * time.Second

	systemPrompt = "You are a copywriter for ETHIO, an Ethiopian online marketplace."
)

// Request describes the listing to write about
type Request struct {
	Title    string
	Category catalog.Category
	Features string
}

// Describer turns a Request into a short sales description
type Describer struct {
	provider ai.Provider
	timeout  time.Duration
	log      *logger.Logger
}

// New wraps provider. A nil provider yields a Describer that always
// returns ErrNotConfigured.
func New(provider ai.Provider, log *logger.Logger) *Describer {
	if log == nil {
		log = logger.Discard()
	}
	return &Describer{provider: provider, timeout: defaultTimeout, log: log.WithComponent("assist")}
}

// NewFromConfig builds the provider named in cfg. A missing credential is
// not an error here; it surfaces as ErrNotConfigured on the first Describe.
func NewFromConfig(cfg config.AIConfig, log *logger.Logger) (*Describer, error) {
	provider, err := providers.New(cfg)
	if err != nil {
		if ai.IsConfigurationError(err) {
			d := New(nil, log)
			d.log.Debug("provider %s unavailable: %v", cfg.Provider, err)
			return d, nil
		}
		return nil, fmt.Errorf("create %s provider: %w", cfg.Provider, err)
	}
	d := New(provider, log)
	if cfg.Timeout > 0 {
		d.timeout = cfg.Timeout
	}
	return d, nil
}

// Configured reports whether a provider is available
func (d *Describer) Configured() bool {
	return d.provider != nil
}

// Close releases the provider
func (d *Describer) Close() error {
	if d.provider == nil {
		return nil
	}
	return d.provider.Close()
}

// BuildPrompt renders the prompt sent for req
func BuildPrompt(req Request) *promptfmt.Prompt {
	features := strings.TrimSpace(req.Features)
	if features == "" {
		features = defaultFeatures
	}
	return promptfmt.New().
		System(systemPrompt).
		User("Write a compelling, short, and professional sales description for a %s listing titled \"%s\". Key features: %s. Target audience: Ethiopians. Keep it under 50 words.",
			req.Category, req.Title, features).
		Build()
}

// Describe asks the provider for a description of req
func (d *Describer) Describe(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", ErrEmptyTitle
	}
	if d.provider == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	prompt := BuildPrompt(req)
	started := time.Now()
	resp, err := d.provider.Complete(ctx, &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    defaultMaxTokens,
		Temperature:  0.7,
		RequestID:    uuid.NewString(),
	})
	if err != nil {
		d.log.ErrorWithFields("description request failed", []logger.Field{
			logger.F("provider", d.provider.Name()),
			logger.Duration(time.Since(started)),
			logger.Error(err),
		})
		if ai.IsConfigurationError(err) || ai.IsAuthenticationError(err) {
			return "", fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
		return "", fmt.Errorf("generate description: %w", err)
	}

	d.log.InfoWithFields("description generated", []logger.Field{
		logger.F("provider", d.provider.Name()),
		logger.F("model", resp.Model),
		logger.Duration(time.Since(started)),
	})
	return resp.Content, nil
}

// Check verifies the provider is reachable and accepts the credential
func (d *Describer) Check(ctx context.Context) error {
	if d.provider == nil {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.provider.HealthCheck(ctx); err != nil {
		d.log.Warn("%s health check failed: %v", d.provider.Name(), err)
		if ai.IsConfigurationError(err) || ai.IsAuthenticationError(err) {
			return fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
		return fmt.Errorf("check %s: %w", d.provider.Name(), err)
	}
	return nil
}

package ai

import (
	"context"
	"io"
)

// Provider is a text-generation backend
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "openai", "ollama")
	Name() string

	// Complete generates text for a single prompt
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies provider connectivity and credentials
	HealthCheck(ctx context.Context) error

	io.Closer
}

package ai

import (
	"time"
)

// CompletionRequest represents a request for text completion
type CompletionRequest struct {
	// Prompt is the input text for completion
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 1.0)
	Temperature float64 `json:"temperature,omitempty"`

	// Model overrides the provider's default model
	Model string `json:"model,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	Usage *TokenUsage `json:"usage"`

	// Model indicates which model was used
	Model string `json:"model"`

	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ValidateRequest rejects requests no provider can serve
func ValidateRequest(req *CompletionRequest) error {
	if req == nil {
		return NewValidationError("request", "nil", "completion request is required")
	}
	if req.Prompt == "" {
		return NewValidationError("prompt", req.Prompt, "prompt cannot be empty")
	}
	if req.MaxTokens < 0 {
		return NewValidationError("max_tokens", "negative", "max_tokens cannot be negative")
	}
	if req.Temperature < 0 || req.Temperature > 1 {
		return NewValidationError("temperature", "out of range", "temperature must be between 0 and 1")
	}
	return nil
}

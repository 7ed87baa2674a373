package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/afrotie/ethio/internal/ai"
)

type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("openai", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ai.ValidateRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(p.buildChatRequest(req))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "openai", err)
	}

	endpoint := p.baseURL.JoinPath("/v1/chat/completions").String()
	resp, err := ai.DoWithRetry(ctx, p.client, p.config.Retry, "openai", func(ctx context.Context) (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		p.setHeaders(httpReq)
		return httpReq, nil
	}, p.handleErrorResponse)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", "openai", err)
	}

	out := chatResp.toAIResponse(req.RequestID)
	if strings.TrimSpace(out.Content) == "" {
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, "no choices returned", "openai")
	}
	return out, nil
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	endpoint := p.baseURL.JoinPath("/v1/models")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "failed to create health check request", "openai", err)
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "health check request failed", "openai", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ai.NewProviderError(ai.ErrTypeAuthentication, "invalid API key", "openai").WithStatus(resp.StatusCode)
	}

	return ai.NewProviderError(ai.ErrTypeProvider, fmt.Sprintf("health check failed with status %d", resp.StatusCode), "openai").
		WithStatus(resp.StatusCode)
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) *ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	return &ChatCompletionRequest{
		Model:       model,
		Messages:    newMessages(req.SystemPrompt, req.Prompt),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		User:        req.RequestID,
	}
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	if p.config.OrganizationID != "" {
		req.Header.Set("OpenAI-Organization", p.config.OrganizationID)
	}
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	code := ""

	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error.Message != "" {
			message = errorResp.Error.Message
			code = errorResp.Error.Code
		}
	}

	var errType ai.ErrorType
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		errType = ai.ErrTypeAuthentication
	case resp.StatusCode == http.StatusBadRequest:
		errType = ai.ErrTypeValidation
	case code == "insufficient_quota":
		errType = ai.ErrTypeQuota
	case resp.StatusCode == http.StatusTooManyRequests:
		errType = ai.ErrTypeRateLimit
	case resp.StatusCode >= 500:
		errType = ai.ErrTypeNetwork
	default:
		errType = ai.ErrTypeProvider
	}

	return ai.NewProviderError(errType, message, "openai").WithStatus(resp.StatusCode)
}

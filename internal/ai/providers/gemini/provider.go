package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/afrotie/ethio/internal/ai"
)

const apiKeyHeader = "x-goog-api-key"

// Provider calls the Gemini generateContent endpoint
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
		return nil, ai.NewConfigurationError("gemini", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ai.ValidateRequest(req); err != nil {
		return nil, err
	}
	started := time.Now()

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	body, err := json.Marshal(p.buildRequest(req))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "gemini", err)
	}

	endpoint := p.modelURL(model) + ":generateContent"
	resp, err := ai.DoWithRetry(ctx, p.client, p.config.Retry, "gemini", func(ctx context.Context) (*http.Request, error) {
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

	var genResp GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", "gemini", err)
	}

	text := genResp.Text()
	if strings.TrimSpace(text) == "" {
		reason := "no candidates returned"
		if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + genResp.PromptFeedback.BlockReason
		}
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, reason, "gemini")
	}

	finish := ""
	if len(genResp.Candidates) > 0 {
		finish = strings.ToLower(genResp.Candidates[0].FinishReason)
	}
	usedModel := genResp.ModelVersion
	if usedModel == "" {
		usedModel = model
	}

	return &ai.CompletionResponse{
		Content:      text,
		FinishReason: finish,
		Usage:        genResp.usage(),
		Model:        usedModel,
		RequestID:    req.RequestID,
		CreatedAt:    started,
	}, nil
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.modelURL(p.config.DefaultModel), http.NoBody)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "failed to create health check request", "gemini", err)
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "health check request failed", "gemini", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return p.handleErrorResponse(resp)
}

func (p *Provider) buildRequest(req *ai.CompletionRequest) *GenerateContentRequest {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	genReq := &GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: req.Prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}
	if req.SystemPrompt != "" {
		genReq.SystemInstruction = &Content{Parts: []Part{{Text: req.SystemPrompt}}}
	}
	return genReq
}

func (p *Provider) modelURL(model string) string {
	return p.baseURL.JoinPath(p.config.APIVersion, "models", model).String()
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set(apiKeyHeader, p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	fallback := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ai.NewProviderError(ai.ErrTypeProvider, fallback, "gemini").WithStatus(resp.StatusCode)
	}

	var errorResp ErrorResponse
	message := fallback
	status := ""
	if json.Unmarshal(body, &errorResp) == nil && errorResp.Error.Message != "" {
		message = errorResp.Error.Message
		status = errorResp.Error.Status
	}

	var errType ai.ErrorType
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		errType = ai.ErrTypeAuthentication
	case resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "api key"):
		errType = ai.ErrTypeAuthentication
	case resp.StatusCode == http.StatusBadRequest:
		errType = ai.ErrTypeValidation
	case isBillingExhausted(message):
		errType = ai.ErrTypeQuota
	case resp.StatusCode == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED":
		errType = ai.ErrTypeRateLimit
	case resp.StatusCode == http.StatusNotFound:
		errType = ai.ErrTypeConfiguration
	case resp.StatusCode >= 500:
		errType = ai.ErrTypeNetwork
	default:
		errType = ai.ErrTypeProvider
	}

	return ai.NewProviderError(errType, message, "gemini").WithStatus(resp.StatusCode)
}

func isBillingExhausted(message string) bool {
	return strings.Contains(strings.ToLower(message), "billing")
}

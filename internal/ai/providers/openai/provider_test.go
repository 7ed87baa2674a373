package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/afrotie/ethio/internal/ai"
)

const testAPIKey = "test-api-key"

func newTestProvider(t *testing.T, serverURL string) *Provider {
	t.Helper()
	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.BaseURL = serverURL
	cfg.Timeout = 5 * time.Second
	cfg.Retry = ai.RetryPolicy{MaxRetries: 0}

	provider, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return provider
}

func TestProvider_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: true, // no API key in defaults
		},
		{
			name: "valid config",
			config: &Config{
				APIKey:             testAPIKey,
				BaseURL:            DefaultBaseURL,
				DefaultModel:       DefaultModel,
				MaxTokens:          DefaultMaxTokens,
				DefaultTemperature: DefaultTemperature,
				Timeout:            DefaultTimeout,
			},
			wantErr: false,
		},
		{
			name: "invalid base URL",
			config: &Config{
				APIKey:  testAPIKey,
				BaseURL: "http://[::1]:namedport",
			},
			wantErr: true,
		},
		{
			name:    "missing API key",
			config:  &Config{BaseURL: DefaultBaseURL},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && provider == nil {
				t.Error("New() returned nil provider without error")
			}
		})
	}
}

func TestProvider_Complete(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer "+testAPIKey {
			t.Errorf("Missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)

		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:      "chatcmpl-1",
			Created: time.Now().Unix(),
			Model:   DefaultModel,
			Choices: []ChatCompletionChoice{{
				Message:      ChatMessage{Role: "assistant", Content: "Spacious villa in Bole."},
				FinishReason: "stop",
			}},
			Usage: ChatCompletionUsage{PromptTokens: 20, CompletionTokens: 5, TotalTokens: 25},
		})
	}))
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "Describe a villa",
		SystemPrompt: "You write listings",
		RequestID:    "r1",
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if resp.Content != "Spacious villa in Bole." {
		t.Errorf("Unexpected content %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 25 {
		t.Errorf("Expected 25 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "Describe a villa" {
		t.Errorf("Unexpected messages %+v", got.Messages)
	}
	if got.Model != DefaultModel || got.MaxTokens != DefaultMaxTokens {
		t.Errorf("Defaults not applied: %+v", got)
	}
}

func TestProvider_CompleteRetriesRateLimit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	provider.config.Retry = ai.RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond}

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "ok" || atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected success on second call, got %q after %d calls", resp.Content, calls)
	}
}

func TestProvider_ErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType ai.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, ai.ErrTypeAuthentication},
		{"bad request", http.StatusBadRequest, ai.ErrTypeValidation},
		{"server error", http.StatusInternalServerError, ai.ErrTypeNetwork},
		{"not found", http.StatusNotFound, ai.ErrTypeProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
			}))
			defer server.Close()

			_, err := newTestProvider(t, server.URL).Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			pe, ok := err.(*ai.ProviderError)
			if !ok {
				t.Fatalf("Expected *ai.ProviderError, got %T", err)
			}
			if pe.Type != tt.wantType || pe.Message != "nope" {
				t.Errorf("Got type %s message %q", pe.Type, pe.Message)
			}
		})
	}
}

func TestProvider_RetryOnlyTransientErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantType  ai.ErrorType
		wantCalls int32
	}{
		{"bad key is final", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`, ai.ErrTypeAuthentication, 1},
		{"spent quota is final", http.StatusTooManyRequests, `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`, ai.ErrTypeQuota, 1},
		{"outage is retried", http.StatusServiceUnavailable, `{"error":{"message":"overloaded","type":"server_error"}}`, ai.ErrTypeNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := newTestProvider(t, server.URL)
			provider.config.Retry = ai.RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

			_, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			if !errorsIsType(err, tt.wantType) {
				t.Errorf("Expected %s error, got %v", tt.wantType, err)
			}
			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("Expected %d calls, got %d", tt.wantCalls, got)
			}
		})
	}
}

func TestProvider_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL).Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
	if !errorsIsType(err, ai.ErrTypeEmptyResponse) {
		t.Errorf("Expected empty response error, got %v", err)
	}
}

func TestProvider_HealthCheck(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	provider := newTestProvider(t, server.URL)
	if err := provider.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	status = http.StatusUnauthorized
	if err := provider.HealthCheck(context.Background()); !ai.IsAuthenticationError(err) {
		t.Errorf("Expected authentication error, got %v", err)
	}
}

func errorsIsType(err error, errType ai.ErrorType) bool {
	pe, ok := err.(*ai.ProviderError)
	return ok && pe.Type == errType
}

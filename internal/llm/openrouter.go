package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-3-flash-preview"

	// Sent so requests are attributed to the app on openrouter.ai.
	openRouterReferer = "https://github.com/abhisek/mastermind"
	openRouterTitle   = "MasterMind"
)

// openRouterModels lets the short names used for the other providers work
// here too. Anything else must be a full "vendor/model" id.
var openRouterModels = map[string]string{
	"gemini-flash":  "google/gemini-3-flash-preview",
	"gemini-pro":    "google/gemini-3-pro-preview",
	"claude-haiku":  "anthropic/claude-haiku-4-5",
	"claude-sonnet": "anthropic/claude-sonnet-4-5",
	"gpt-4o-mini":   "openai/gpt-4o-mini",
}

// OpenRouterProvider talks to OpenRouter through its OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterModel
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   resolveModel(cfg.Model, openRouterModels),
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, attributionTransport{next: http.DefaultTransport})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

type attributionTransport struct {
	next http.RoundTripper
}

func (t attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return t.next.RoundTrip(r)
}

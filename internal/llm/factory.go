package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/mastermind/internal/logging"
	"github.com/abhisek/mastermind/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging. Requests are never retried.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logging.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		cfg.Anthropic.Timeout = cfg.Timeout
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		cfg.OpenAI.Timeout = cfg.Timeout
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		cfg.Gemini.Timeout = cfg.Timeout
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		cfg.OpenRouter.Timeout = cfg.Timeout
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, eventRepo, log), nil
}

// NewProviderFromEnv resolves configuration from MASTERMIND_* variables,
// falling back to the standard vendor key variables, and builds a provider.
// ok is false when no provider could be configured; err is set only when a
// configured provider failed to initialize.
func NewProviderFromEnv(ctx context.Context, base Config, eventRepo store.EventRepo, log *logging.Logger) (p Provider, ok bool, err error) {
	cfg := ApplyEnv(base)
	if cfg.Validate() != nil {
		var found bool
		cfg, found = DiscoverConfig(cfg)
		if !found {
			return nil, false, nil
		}
	}

	p, err = NewProvider(ctx, cfg, eventRepo, log)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

package llm

import (
	"math"
	"testing"
)

func TestLookupPrice(t *testing.T) {
	tests := []struct {
		model string
		want  Price
		ok    bool
	}{
		{"gemini-3-flash-preview", Price{0.5, 3}, true},
		{"google/gemini-3-flash-preview", Price{0.5, 3}, true},
		{"anthropic/claude-haiku-4-5", Price{1, 5}, true},
		{"claude-haiku-4-5-20251001", Price{1, 5}, true},
		{"meta-llama/llama-3-8b", Price{}, false},
		{"mock", Price{}, false},
		{"", Price{}, false},
	}
	for _, tt := range tests {
		got, ok := LookupPrice(tt.model)
		if ok != tt.ok || got != tt.want {
			t.Errorf("LookupPrice(%q) = %+v, %v; want %+v, %v", tt.model, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrice_Estimate(t *testing.T) {
	// A typical study plan: 2k tokens of prompt, 6k of schedule.
	got := Price{Input: 0.5, Output: 3}.Estimate(2_000, 6_000)
	if math.Abs(got-0.019) > 1e-9 {
		t.Errorf("estimate = %v, want 0.019", got)
	}
}

func TestProviderDefaultsArePriced(t *testing.T) {
	cfg := DefaultConfig()
	for _, model := range []string{
		cfg.Gemini.Model,
		cfg.OpenRouter.Model,
		cfg.OpenAI.Model,
		anthropicModels[cfg.Anthropic.Model],
	} {
		if _, ok := LookupPrice(model); !ok {
			t.Errorf("default model %q has no price", model)
		}
	}
}

package llm

import "strings"

// Price is the list price of a model in USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Estimate returns the USD cost of a call with the given token counts.
func (p Price) Estimate(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1e6
}

// LookupPrice finds the price of a model as recorded on a request event.
// OpenRouter ids carry a vendor prefix ("google/gemini-3-flash-preview")
// which is dropped before the lookup. ok is false for unlisted models.
func LookupPrice(model string) (Price, bool) {
	if p, ok := prices[model]; ok {
		return p, true
	}
	if _, bare, found := strings.Cut(model, "/"); found {
		p, ok := prices[bare]
		return p, ok
	}
	return Price{}, false
}

// prices covers the models the provider aliases resolve to plus their
// close neighbours. Taken from the vendors' published rates, 2026-02.
var prices = map[string]Price{
	// Gemini, the default provider.
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-flash-latest":    {0.3, 2.5},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	// Anthropic
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},
	"claude-3-5-haiku-latest":    {0.8, 4},
}

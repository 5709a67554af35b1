// Package llm provides the model configuration and Gemini client used for
// document classification.
package llm

import "fmt"

// ModelTier selects how much model capability a call pays for.
type ModelTier string

const (
	// TierLite is the default for URL classification: short snippets,
	// structured output, high volume.
	TierLite ModelTier = "lite"
	// TierStandard is for documents where lite verdicts prove unreliable,
	// such as scanned PDFs with little extractable text.
	TierStandard ModelTier = "standard"
	// TierAdvanced is the escalation tier for manual reruns of single URLs.
	TierAdvanced ModelTier = "advanced"
)

// tiers, most capable first, drive the GetModel fallback order.
var tiers = []ModelTier{TierStandard, TierLite}

// ParseTier maps a flag value onto a model tier.
func ParseTier(s string) (ModelTier, error) {
	switch tier := ModelTier(s); tier {
	case TierLite, TierStandard, TierAdvanced:
		return tier, nil
	}
	return "", fmt.Errorf("unknown model tier %q (valid: %s, %s, %s)", s, TierLite, TierStandard, TierAdvanced)
}

// Provider identifies an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config maps model tiers to concrete model names for one provider.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini model per tier.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	for _, fallback := range tiers {
		if model, ok := c.Models[fallback]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier's model replaced.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models))
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}

package llm

import "maps"

// ModelTier selects a model by capability rather than by name
type ModelTier string

const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard"
	TierAdvanced ModelTier = "advanced"
)

// Provider names a hosted model API
type Provider string

const (
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI also covers any server speaking the chat completions API
	ProviderOpenAI Provider = "openai"
)

// defaultTemperature leaves room for varied phrasing between regions
const defaultTemperature = 0.7

var presets = map[Provider]map[ModelTier]string{
	ProviderGemini: {
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	},
	ProviderOpenAI: {
		TierLite:     "gpt-4o-mini",
		TierStandard: "gpt-4o",
		TierAdvanced: "gpt-4.1",
	},
}

// Config is the model setup for one backend
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// BaseURL overrides the provider endpoint; empty uses the public API
	BaseURL     string
	Temperature float32
}

// DefaultGeminiConfig returns the Gemini presets
func DefaultGeminiConfig() *Config {
	return ConfigFor(ProviderGemini)
}

// DefaultOpenAIConfig returns the OpenAI presets
func DefaultOpenAIConfig() *Config {
	return ConfigFor(ProviderOpenAI)
}

// ConfigFor returns the presets for provider. Unknown providers get Gemini.
func ConfigFor(provider Provider) *Config {
	models, ok := presets[provider]
	if !ok {
		provider, models = ProviderGemini, presets[ProviderGemini]
	}
	return &Config{
		Provider:    provider,
		Models:      maps.Clone(models),
		Temperature: defaultTemperature,
	}
}

// GetModel returns the model for tier, falling back to the standard then the lite model
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model := c.Models[t]; model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c that uses model for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	clone := *c
	clone.Models = maps.Clone(c.Models)
	if clone.Models == nil {
		clone.Models = make(map[ModelTier]string)
	}
	clone.Models[tier] = model
	return &clone
}

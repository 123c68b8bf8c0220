// Package llm wraps the Gemini API behind a small JSON-generation interface.
package llm

import "os"

// ModelTier selects a model by how much reasoning a task needs
type ModelTier string

const (
	// TierStandard is for structured extraction: parsing raw resume text
	TierStandard ModelTier = "standard"
	// TierAdvanced is for rewriting: optimizing and tailoring content
	TierAdvanced ModelTier = "advanced"
)

// Environment variables that override the default models
const (
	EnvModelStandard = "GEMINI_MODEL_STANDARD"
	EnvModelAdvanced = "GEMINI_MODEL_ADVANCED"
)

// Config holds model selection and sampling settings
type Config struct {
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the Gemini defaults
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     0.7,
		MaxOutputTokens: 8192,
	}
}

// ConfigFromEnv returns DefaultConfig with any model overrides from the environment applied
func ConfigFromEnv() *Config {
	c := DefaultConfig()
	if m := os.Getenv(EnvModelStandard); m != "" {
		c = c.WithModel(TierStandard, m)
	}
	if m := os.Getenv(EnvModelAdvanced); m != "" {
		c = c.WithModel(TierAdvanced, m)
	}
	return c
}

// GetModel returns the model name for a tier, falling back to the standard tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}

// WithModel returns a copy of c with model assigned to tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// Package llm provides the LLM client abstraction and configuration used by
// the scoring and optimization pipeline.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default per-call timeouts. Extraction calls return a short list of strings;
// full resume generation produces a much larger response and needs more room.
const (
	DefaultExtractionTimeout = 60 * time.Second
	DefaultGenerationTimeout = 120 * time.Second
)

// Config holds the model configuration for the pipeline. Credentials are
// passed explicitly into constructors rather than read from process state so
// the core stays testable with fakes.
type Config struct {
	Provider Provider
	Model    string
	Endpoint string // optional API base URL override

	ExtractionTimeout time.Duration
	GenerationTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGemini,
		Model:             "gemini-2.5-flash",
		ExtractionTimeout: DefaultExtractionTimeout,
		GenerationTimeout: DefaultGenerationTimeout,
	}
}

// WithModel returns a copy of the config with a specific model name.
func (c *Config) WithModel(model string) *Config {
	cp := *c
	cp.Model = model
	return &cp
}

// ConfigurationError indicates missing or invalid model credentials. It is
// fatal: surfaced immediately, never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

package ai

import "errors"

var ErrAPIKeyRequired = errors.New("ai config: API key required")

// Config holds settings shared by the AI services.
type Config struct {
	// APIKey authenticates against the hosted model API.
	APIKey string

	// Model is the generation model identifier, e.g. "gemini-2.5-flash".
	Model string

	// EmbeddingModel is the embedding model identifier,
	// e.g. "text-embedding-004".
	EmbeddingModel string

	// MaxInputChars truncates raw postings and resumes before prompting.
	MaxInputChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

func WithAPIKey(key string) ConfigOption {
	return func(c *Config) { c.APIKey = key }
}

func WithModel(model string) ConfigOption {
	return func(c *Config) { c.Model = model }
}

func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) { c.EmbeddingModel = model }
}

func WithMaxInputChars(n int) ConfigOption {
	return func(c *Config) { c.MaxInputChars = n }
}

// DefaultConfig returns a Config with the default model family.
func DefaultConfig() *Config {
	return &Config{
		Model:          "gemini-2.5-flash",
		EmbeddingModel: "text-embedding-004",
		MaxInputChars:  20000,
	}
}

// NewConfig creates a Config with defaults and applies the options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyRequired
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.MaxInputChars <= 0 {
		c.MaxInputChars = 20000
	}
	return nil
}

// Truncate caps text at the configured input limit.
func (c *Config) Truncate(text string) string {
	if len(text) > c.MaxInputChars {
		return text[:c.MaxInputChars]
	}
	return text
}

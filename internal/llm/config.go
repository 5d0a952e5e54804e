package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNotConfigured is returned when no provider credentials are found.
var ErrNotConfigured = errors.New("no LLM provider configured")

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend, one of the Provider* names.
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.5-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Any OpenAI-compatible endpoint.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from LIFEWHEEL_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "LIFEWHEEL_LLM_PROVIDER")

	setFromEnv(&cfg.Gemini.APIKey, "LIFEWHEEL_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "LIFEWHEEL_GEMINI_MODEL")

	setFromEnv(&cfg.Anthropic.APIKey, "LIFEWHEEL_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "LIFEWHEEL_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "LIFEWHEEL_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "LIFEWHEEL_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "LIFEWHEEL_OPENAI_BASE_URL")

	setFromEnv(&cfg.OpenRouter.APIKey, "LIFEWHEEL_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "LIFEWHEEL_OPENROUTER_MODEL")

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables in
// priority order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a
// Config for the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// ResolveConfig prefers explicit LIFEWHEEL_* configuration and falls
// back to discovery. It returns ErrNotConfigured when neither yields a
// usable provider.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return cfg, nil
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	return Config{}, ErrNotConfigured
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LIFEWHEEL_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LIFEWHEEL_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LIFEWHEEL_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LIFEWHEEL_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

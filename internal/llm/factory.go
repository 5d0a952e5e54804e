package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/lifewheel/internal/store"
)

// NewProvider builds the Provider selected by cfg, wrapped as
// caller → retry → logging → base. eventRepo, logger and observer may
// be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger, observer Observer) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, eventRepo, logger, observer)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv resolves configuration from the environment and
// builds the provider. It returns ErrNotConfigured when no credentials
// are present so callers can run without a narrative.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger, observer Observer) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo, logger, observer)
}

package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/quizbox/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller -> timeout -> retry -> logging -> provider. events may be nil.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cred := cfg.Selected()
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cred)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cred)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cred)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cred)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, events, logger)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}

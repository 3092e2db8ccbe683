package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mathctx/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → timeout → retry → logging → adapter.
// events may be nil, in which case requests are not recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	pc := cfg.Selected()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(pc)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(pc)
	case ProviderOpenRouter:
		if pc.BaseURL == "" {
			pc.BaseURL = defaultOpenRouterBaseURL
		}
		base, err = NewOpenAIProvider(pc)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, pc)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events, logger)
	}
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}

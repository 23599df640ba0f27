package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/somdipdey/Learning-Styles/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware: caller → retry → logging → base. Each retry attempt is
// therefore recorded as its own event.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		mock := NewMockProvider()
		demo, brief := MockText(mockAnalysis), MockJSON(mockBrief)
		mock.Default = &demo
		mock.DefaultStructured = &brief
		base = mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithRetry(logged, cfg.Retry, logger), nil
}

// mockAnalysis is what the mock provider answers with, so the analysis flow
// can be tried without an API key.
const mockAnalysis = `## Summary

This is an offline sample response from the mock provider. Configure
LSQ_LLM_PROVIDER and an API key to receive a real analysis of your scores.`

var mockBrief = map[string]any{
	"headline":    "Offline sample: configure an LLM provider for a real reading.",
	"strengths":   []string{"Works without network access"},
	"blind_spots": []string{"Does not look at your scores"},
	"next_steps":  []string{"Set LSQ_LLM_PROVIDER and an API key"},
}

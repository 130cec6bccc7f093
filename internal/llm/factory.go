package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizdesk/internal/store"
)

// mockQuestion is what the mock provider answers with when it is selected
// through configuration.
const mockQuestion = "사과 3개와 배 4개가 있습니다. 과일은 모두 몇 개입니까?"

// NewProvider creates a Provider from configuration, wrapped with event
// logging when eventRepo is non-nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		m := NewMockProvider()
		m.SetFallback(MockResponse{Text: mockQuestion})
		base = m
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo), nil
}

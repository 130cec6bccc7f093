// Package questiongen turns an achievement standard into one candidate
// assessment question through a language model.
package questiongen

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/quizdesk/internal/llm"
)

// Generator produces one question for an achievement standard.
type Generator interface {
	// Generate makes exactly one model call and returns the trimmed text
	// of its first completion. It never retries.
	Generate(ctx context.Context, standard string) (string, error)
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for one question matching standard.
func (g *LLMGenerator) Generate(ctx context.Context, standard string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(standard)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrNoCompletions) {
			return "", ErrEmptyGeneration
		}
		return "", &GenerationError{Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	if resp.Completions == 0 || text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}

package questiongen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness. Zero keeps the
	// provider default.
	Temperature float64

	// Timeout bounds the single model call. Zero means no deadline
	// beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 1024,
		Timeout:   60 * time.Second,
	}
}

// Package llm wraps the language-model backends the agent can run on.
package llm

import (
	"context"
	"errors"
	"time"

	"slotwise/config"
)

// Client is a text-in/text-out language model.
type Client interface {
	// GenerateContent produces a completion for the given prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend for logging.
	Name() string
}

// ErrNoProvider is returned when no LLM API key is configured.
var ErrNoProvider = errors.New("no LLM API key configured: set GROQ_API_KEY, GEMINI_API_KEY or OPENAI_API_KEY")

// NewFromConfig picks the first configured backend, in order Groq, Gemini,
// OpenAI. Groq is preferred because its free tier makes the assistant usable
// out of the box.
func NewFromConfig(cfg config.Config) (Client, error) {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch {
	case cfg.GroqAPIKey != "":
		return NewGroqClient(cfg.GroqAPIKey, timeout), nil
	case cfg.GeminiAPIKey != "":
		return NewGeminiClient(cfg.GeminiAPIKey, timeout)
	case cfg.OpenAIAPIKey != "":
		return NewOpenAIClient(cfg.OpenAIAPIKey, timeout), nil
	default:
		return nil, ErrNoProvider
	}
}

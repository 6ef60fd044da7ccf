package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/resumeready/backend/config"
)

// ErrEmptyResponse is returned when a provider answers with no text
var ErrEmptyResponse = errors.New("empty response from LLM provider")

// Provider sends a single prompt to a completion model and returns its text
type Provider interface {
	// Complete returns the trimmed completion text for prompt
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider identifier, e.g. "groq"
	Name() string

	// Model returns the model the provider talks to
	Model() string
}

// Closer is implemented by providers that hold network clients
type Closer interface {
	Close() error
}

// SupportedProviders lists the values accepted by LLM_PROVIDER
func SupportedProviders() []string {
	return []string{"groq", "openrouter", "claude", "gemini", "vertex"}
}

// NewProvider creates the provider selected by the configuration, wrapped in a rate limiter
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch cfg.LLM.Provider {
	case "groq", "openrouter":
		p, err = NewOpenAICompatProvider(cfg)
	case "claude":
		p, err = NewClaudeProvider(cfg)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg)
	case "vertex":
		p, err = NewVertexProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewRateLimited(p, cfg.LLM.RequestsPerMinute), nil
}

// finish normalizes completion text and maps blank answers to ErrEmptyResponse
func finish(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.LLM.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
}

package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/resumeready/backend/config"
	"github.com/resumeready/backend/utils"
)

// GeminiProvider implements Provider with the Gemini developer API
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiProvider creates a Gemini API client authenticated with an API key
func NewGeminiProvider(ctx context.Context, cfg *config.Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.LLM.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: utils.NewHTTPClient(requestTimeout(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		model:       cfg.LLM.Model,
		temperature: float32(cfg.LLM.Temperature),
		maxTokens:   int32(cfg.LLM.MaxTokens),
	}, nil
}

// Name returns the provider identifier
func (g *GeminiProvider) Name() string { return "gemini" }

// Model returns the configured model
func (g *GeminiProvider) Model() string { return g.model }

// Complete generates content for a text prompt
func (g *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(g.temperature),
			MaxOutputTokens: g.maxTokens,
		},
	)
	if err != nil {
		err = fmt.Errorf("failed to generate content: %w", err)
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "gemini", StatusCode: apiErr.Code, Err: err}
		}
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	return finish(resp.Text())
}

package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/eduardolat/openroutergo"
	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/config"
	"github.com/resumeready/backend/utils"
)

// GroqBaseURL is the OpenAI compatible endpoint used when LLM_PROVIDER=groq
const GroqBaseURL = "https://api.groq.com/openai/v1"

const systemMessage = "You are an expert career coach and technical recruiter. Follow the requested output format exactly."

// OpenAICompatProvider talks to OpenAI style chat completion APIs (Groq, OpenRouter)
type OpenAICompatProvider struct {
	client      *openroutergo.Client
	name        string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *logrus.Entry
}

// NewOpenAICompatProvider creates a chat completion client for groq or openrouter
func NewOpenAICompatProvider(cfg *config.Config) (*OpenAICompatProvider, error) {
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" && cfg.LLM.Provider == "groq" {
		baseURL = GroqBaseURL
	}

	timeout := requestTimeout(cfg)
	builder := openroutergo.NewClient().
		WithAPIKey(cfg.LLM.APIKey).
		WithHTTPClient(utils.NewHTTPClient(timeout))
	if baseURL != "" {
		builder = builder.WithBaseURL(baseURL)
	}
	client, err := builder.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	return &OpenAICompatProvider{
		client:      client,
		name:        cfg.LLM.Provider,
		model:       cfg.LLM.Model,
		baseURL:     baseURL,
		temperature: cfg.LLM.Temperature,
		maxTokens:   cfg.LLM.MaxTokens,
		timeout:     timeout,
		logger:      utils.Component("llm").WithField("provider", cfg.LLM.Provider),
	}, nil
}

// Name returns the provider identifier
func (p *OpenAICompatProvider) Name() string { return p.name }

// Model returns the configured model
func (p *OpenAICompatProvider) Model() string { return p.model }

// Complete runs a single turn chat completion
func (p *OpenAICompatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	completion := p.client.
		NewChatCompletion().
		WithContext(ctx).
		WithModel(p.model).
		WithSystemMessage(systemMessage).
		WithUserMessage(prompt).
		WithTemperature(p.temperature)
	if p.maxTokens > 0 {
		completion = completion.WithMaxTokens(p.maxTokens)
	}

	_, resp, err := completion.Execute()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s completion aborted: %w", p.name, ctx.Err())
		}
		return "", withStatus(p.name, fmt.Errorf("failed to execute completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	p.logger.WithFields(logrus.Fields{
		"model":    p.model,
		"duration": time.Since(start),
	}).Debug("Completion received")
	return finish(resp.Choices[0].Message.Content)
}

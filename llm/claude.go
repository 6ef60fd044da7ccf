package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"

	"github.com/resumeready/backend/config"
	"github.com/resumeready/backend/utils"
)

// ClaudeProvider implements Provider using Anthropic's Claude
type ClaudeProvider struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
	logger      *logrus.Entry
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) (*ClaudeProvider, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("claude API key not configured - set LLM_API_KEY")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
		option.WithHTTPClient(utils.NewHTTPClient(requestTimeout(cfg))),
	)

	return &ClaudeProvider{
		client:      client,
		model:       cfg.LLM.Model,
		maxTokens:   int64(cfg.LLM.MaxTokens),
		temperature: cfg.LLM.Temperature,
		logger:      utils.Component("llm").WithField("provider", "claude"),
	}, nil
}

// Name returns the provider identifier
func (cp *ClaudeProvider) Name() string { return "claude" }

// Model returns the configured model
func (cp *ClaudeProvider) Model() string { return cp.model }

// Complete sends the prompt as a single user message
func (cp *ClaudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.model),
		MaxTokens:   cp.maxTokens,
		Temperature: anthropic.Float(cp.temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		err = fmt.Errorf("failed to call Claude API: %w", err)
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "claude", StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", err
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	cp.logger.WithFields(logrus.Fields{
		"model":    cp.model,
		"duration": time.Since(start),
	}).Debug("Completion received")

	return finish(sb.String())
}

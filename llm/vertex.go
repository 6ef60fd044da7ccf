package llm

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/resumeready/backend/config"
)

// VertexProvider implements Provider with Gemini on Vertex AI
type VertexProvider struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewVertexProvider creates a Vertex AI client using application default credentials
func NewVertexProvider(ctx context.Context, cfg *config.Config) (*VertexProvider, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(cfg.LLM.Model)
	model.SetTemperature(float32(cfg.LLM.Temperature))
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(int32(cfg.LLM.MaxTokens))

	return &VertexProvider{
		client:    client,
		model:     model,
		modelName: cfg.LLM.Model,
	}, nil
}

// Close closes the Vertex AI client
func (v *VertexProvider) Close() error {
	return v.client.Close()
}

// Name returns the provider identifier
func (v *VertexProvider) Name() string { return "vertex" }

// Model returns the configured model
func (v *VertexProvider) Model() string { return v.modelName }

// Complete generates content for a text prompt
func (v *VertexProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return finish(extractText(resp))
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

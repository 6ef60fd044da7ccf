package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/resumeready/backend/analysis"
	"github.com/resumeready/backend/models"
)

// Schema is a JSON schema fragment
type Schema map[string]interface{}

// Tool is an operation exposed to external agents over MCP
type Tool interface {
	// Name is the unique identifier clients call the tool by
	Name() string

	Description() string

	// InputSchema describes the JSON object accepted by Execute
	InputSchema() Schema

	// Execute runs the tool. Domain failures are reported inside the
	// result envelope; a returned error means the tool itself broke.
	Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// ResumeAnalyzer is the LLM backed analysis used by the resume tools
type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, resumeText string) (*analysis.ResumeResult, error)
	MatchResume(ctx context.Context, resumeText, jobDescription string) (*models.MatchResult, error)
}

// ToolRegistry is a concurrency safe set of tools keyed by name
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: map[string]Tool{}}
}

// Register adds a tool. It panics when the name is already taken.
func (r *ToolRegistry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Name()
	if _, dup := r.tools[name]; dup {
		panic("tools: duplicate registration of " + name)
	}
	r.tools[name] = tool
}

func (r *ToolRegistry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns the registered tools sorted by name
func (r *ToolRegistry) List() []Tool {
	r.mu.RLock()
	out := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ToolDefinition is the client facing description of a tool
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

func (r *ToolRegistry) Definitions() []ToolDefinition {
	list := r.List()
	defs := make([]ToolDefinition, len(list))
	for i, tool := range list {
		defs[i] = ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.InputSchema(),
		}
	}
	return defs
}

// ToolResult is the envelope every tool answers with
type ToolResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Success wraps data in a successful envelope
func Success(data interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return json.Marshal(ToolResult{Success: true, Data: payload})
}

// Failure builds an unsuccessful envelope with a formatted message
func Failure(format string, args ...interface{}) (json.RawMessage, error) {
	return json.Marshal(ToolResult{Error: fmt.Sprintf(format, args...)})
}

// objectSchema describes an object of string properties, all of them listed in required
// unless they are optional
func objectSchema(props map[string]string, required ...string) Schema {
	properties := make(map[string]interface{}, len(props))
	for name, desc := range props {
		properties[name] = Schema{"type": "string", "description": desc}
	}
	s := Schema{"type": "object", "properties": properties}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// decodeInput unmarshals tool input, treating an empty payload as {}
func decodeInput(input json.RawMessage, dst interface{}) error {
	if len(input) == 0 {
		return nil
	}
	return json.Unmarshal(input, dst)
}

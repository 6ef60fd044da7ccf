package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeready/backend/tools"
)

type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "Echo the input" }
func (echoTool) InputSchema() tools.Schema {
	return tools.Schema{"type": "object"}
}
func (echoTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var v map[string]interface{}
	if err := json.Unmarshal(input, &v); err != nil {
		return nil, err
	}
	if v["fail"] == true {
		return tools.Failure("asked to fail")
	}
	return tools.Success(v)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := tools.NewToolRegistry()
	registry.Register(echoTool{})
	registry.Register(tools.NewExtractSkillsTool())

	r := gin.New()
	NewServer(registry).RegisterRoutes(r.Group("/api"))
	return r
}

func post(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRPC(t *testing.T, w *httptest.ResponseRecorder, result interface{}) MCPResponse {
	t.Helper()
	var resp struct {
		MCPResponse
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if result != nil && len(resp.Result) > 0 {
		require.NoError(t, json.Unmarshal(resp.Result, result))
	}
	return resp.MCPResponse
}

func TestInitialize(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp", `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result InitializeResult
	resp := decodeRPC(t, w, &result)
	assert.Nil(t, resp.Error)
	assert.Equal(t, protocolVersion, result.ProtocolVersion)
	assert.Equal(t, serverName, result.ServerInfo["name"])
}

func TestToolsListRPC(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp", `{"jsonrpc":"2.0","id":"a","method":"tools/list"}`)

	var result ToolsListResult
	resp := decodeRPC(t, w, &result)
	assert.Equal(t, "a", resp.ID)
	require.Len(t, result.Tools, 2)
	assert.Equal(t, "echo", result.Tools[0].Name)
	assert.Equal(t, "extract_skills", result.Tools[1].Name)
}

func TestToolsCallRPC(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp",
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"extract_skills","arguments":{"resume_text":"Docker, AWS"}}}`)

	var result ToolCallResult
	resp := decodeRPC(t, w, &result)
	assert.Nil(t, resp.Error)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, `"skills":["aws","docker"]`)
}

func TestToolsCallMarksToolFailure(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp",
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"fail":true}}}`)

	var result ToolCallResult
	decodeRPC(t, w, &result)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "asked to fail")
}

func TestToolsCallUnknownTool(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp/tools/call", `{"name":"nope"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result ToolCallResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.IsError)
	assert.Equal(t, "tool not found: nope", result.Content[0].Text)
}

func TestToolsCallRequiresName(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp/tools/call", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, setupRouter(), "/api/mcp", `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{}}`)
	resp := decodeRPC(t, w, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeInvalidParams, resp.Error.Code)
}

func TestUnknownMethodAndParseError(t *testing.T) {
	r := setupRouter()

	resp := decodeRPC(t, post(t, r, "/api/mcp", `{"jsonrpc":"2.0","id":5,"method":"resources/list"}`), nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)

	resp = decodeRPC(t, post(t, r, "/api/mcp", `{not json`), nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeParseError, resp.Error.Code)
}

func TestToolsListEndpoint(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp/tools/list", ``)
	require.Equal(t, http.StatusOK, w.Code)

	var result ToolsListResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Tools, 2)
}

func TestRejectsWrongJSONRPCVersion(t *testing.T) {
	resp := decodeRPC(t, post(t, setupRouter(), "/api/mcp", `{"jsonrpc":"1.0","id":6,"method":"ping"}`), nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeInvalidRequest, resp.Error.Code)
}

func TestNotificationsAreAccepted(t *testing.T) {
	w := post(t, setupRouter(), "/api/mcp", `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, w.Body.String())
}

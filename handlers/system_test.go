package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/tools"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		cache  Pinger
		status int
		health string
		redis  string
	}{
		{name: "healthy without redis", db: stubPinger{}, status: http.StatusOK, health: "healthy", redis: "disabled"},
		{name: "healthy with redis", db: stubPinger{}, cache: stubPinger{}, status: http.StatusOK, health: "healthy", redis: "ok"},
		{name: "redis down", db: stubPinger{}, cache: stubPinger{err: errors.New("refused")}, status: http.StatusOK, health: "degraded", redis: "unreachable"},
		{name: "database down", db: stubPinger{err: errors.New("refused")}, status: http.StatusServiceUnavailable, health: "unhealthy", redis: "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler(tt.db, tt.cache, tools.NewToolRegistry())
			r := gin.New()
			r.GET("/health", h.HealthCheck)

			w := doJSON(t, r, http.MethodGet, "/health", nil)
			assert.Equal(t, tt.status, w.Code)

			resp := decodeBody[models.HealthResponse](t, w)
			assert.Equal(t, tt.health, resp.Status)
			assert.Equal(t, tt.redis, resp.Checks["redis"])
			assert.Equal(t, Version, resp.Version)
		})
	}
}

func TestGetTools(t *testing.T) {
	h := NewSystemHandler(stubPinger{}, nil, tools.NewDefaultRegistry(&fakeAnalyzer{}, nil))
	r := gin.New()
	r.GET("/api/tools", h.GetTools)

	w := doJSON(t, r, http.MethodGet, "/api/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[struct {
		Tools []tools.ToolDefinition `json:"tools"`
	}](t, w)
	var names []string
	for _, d := range body.Tools {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "analyze_resume")
	assert.Contains(t, names, "extract_skills")
}

func TestRegisterSPA(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	r := gin.New()
	r.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	RegisterSPA(r, dir)

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{method: http.MethodGet, path: "/app.js", status: http.StatusOK, body: "console.log(1)"},
		{method: http.MethodGet, path: "/reset-password/abc", status: http.StatusOK, body: "<html>app</html>"},
		{method: http.MethodGet, path: "/api/ping", status: http.StatusOK, body: "pong"},
		{method: http.MethodGet, path: "/api/missing", status: http.StatusNotFound},
		{method: http.MethodPost, path: "/dashboard", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, existing)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, existing, w.Header().Get(RequestIDHeader))
	assert.Equal(t, existing, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEqual(t, "not a uuid", generated)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}

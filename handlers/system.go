package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/tools"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// SystemHandler serves health and introspection endpoints
type SystemHandler struct {
	db       Pinger
	cache    Pinger
	registry *tools.ToolRegistry
}

// NewSystemHandler creates a system handler. cache may be nil when Redis is not configured.
func NewSystemHandler(db, cache Pinger, registry *tools.ToolRegistry) *SystemHandler {
	return &SystemHandler{db: db, cache: cache, registry: registry}
}

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server and its database are reachable
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Failure 503 {object} models.HealthResponse "Database unreachable"
// @Router /health [get]
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := models.HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{},
	}

	if err := h.db.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		resp.Status = "unhealthy"
		resp.Checks["database"] = err.Error()
	} else {
		resp.Checks["database"] = "ok"
	}

	switch {
	case h.cache == nil:
		resp.Checks["redis"] = "disabled"
	case h.cache.Ping(ctx) != nil:
		resp.Status = degraded(resp.Status)
		resp.Checks["redis"] = "unreachable"
	default:
		resp.Checks["redis"] = "ok"
	}

	c.JSON(status, resp)
}

// GetTools returns available MCP tools
// @Summary List available tools
// @Description Get a list of all available MCP tools for AI agents
// @Tags Tools
// @Produce json
// @Success 200 {object} map[string]interface{} "List of tools"
// @Router /tools [get]
func (h *SystemHandler) GetTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tools": h.registry.Definitions(),
	})
}

func degraded(status string) string {
	if status == "healthy" {
		return "degraded"
	}
	return status
}

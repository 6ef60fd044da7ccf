package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/resumeready/backend/models"
)

// RegisterSPA serves the built frontend from dir. Unknown non-API GET paths get index.html
// so client side routes such as /reset-password/:token load the app.
func RegisterSPA(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Not found",
				Code:  http.StatusNotFound,
			})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(index)
	})
}

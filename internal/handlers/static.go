package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerStatic serves the built frontend with an index.html fallback so
// client-side routes still resolve on a hard refresh.
func registerStatic(router *gin.Engine, dir string) {
	fileServer := http.FileServer(http.Dir(dir))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not found"})
			return
		}

		path := filepath.Join(dir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}

		c.File(filepath.Join(dir, "index.html"))
	})
}

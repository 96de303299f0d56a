package handler

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/pkg/response"
)

//go:embed swagger.html
var swaggerHTML []byte

// DefaultOpenAPIPath is relative to the server's working directory.
const DefaultOpenAPIPath = "api/openapi.yaml"

// DocsHandler serves the OpenAPI document from disk, so edits show up
// without a rebuild, and a Swagger UI page that loads it.
type DocsHandler struct {
	path string
}

func NewDocsHandler(path string) *DocsHandler {
	if path == "" {
		path = DefaultOpenAPIPath
	}
	return &DocsHandler{path: path}
}

func (h *DocsHandler) Register(r gin.IRoutes) {
	r.GET("/openapi.yaml", h.OpenAPI)
	r.GET("/docs", h.UI)
}

func (h *DocsHandler) OpenAPI(c *gin.Context) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			response.WriteError(c, fmt.Errorf("openapi document %s: %w", h.path, repository.ErrNotFound))
			return
		}
		response.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
}

func (h *DocsHandler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerHTML)
}

package forms

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for form template discovery.
type Handler struct {
	registry *Registry
}

// NewHandler creates a new forms handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes registers form routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/forms")
	g.GET("/templates", h.ListTemplates)
	g.GET("/templates/:name", h.GetTemplate)
}

// ListTemplates handles GET /api/v1/forms/templates
func (h *Handler) ListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"templates": h.registry.Names(),
	})
}

// GetTemplate handles GET /api/v1/forms/templates/:name
func (h *Handler) GetTemplate(c echo.Context) error {
	t, ok := h.registry.Template(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "form template not found")
	}
	return c.JSON(http.StatusOK, t)
}

package vocabulary

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for terminology lookups.
type Handler struct {
	store *Store
}

// NewHandler creates a new terminology handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers terminology routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/terminology")
	g.GET("/normalize", h.Normalize)
	g.GET("/suggest", h.Suggest)
	g.GET("/stats", h.GetStats)
}

// Normalize handles GET /api/v1/terminology/normalize?term=...
func (h *Handler) Normalize(c echo.Context) error {
	term := c.QueryParam("term")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'term' is required")
	}
	norm, ok := h.store.NormalizeTerm(term)
	if !ok {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"input":   term,
			"matched": false,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"input":      norm.Input,
		"matched":    true,
		"normalized": norm.Normalized,
		"kind":       norm.Kind,
		"category":   norm.Category,
		"method":     norm.Method,
		"confidence": norm.Confidence,
	})
}

// Suggest handles GET /api/v1/terminology/suggest?q=...&category=...
func (h *Handler) Suggest(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	suggestions := h.store.Suggestions(q, c.QueryParam("category"), limit)
	if suggestions == nil {
		suggestions = []TermSuggestion{}
	}
	return c.JSON(http.StatusOK, suggestions)
}

// GetStats handles GET /api/v1/terminology/stats
func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Stats())
}

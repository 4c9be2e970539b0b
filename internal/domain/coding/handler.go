package coding

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

// Handler provides REST endpoints for medical code operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new coding handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers coding routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/codes")
	g.GET("/search", h.Search)
	g.GET("/hierarchy", h.GetHierarchy)
	g.GET("/category/:category", h.GetByCategory)
	g.POST("/suggest", h.Suggest)
	g.POST("/validate", h.Validate)
	g.POST("/crossmap", h.CrossMap)
	g.POST("/billable", h.Billable)
}

// Search handles GET /api/v1/codes/search?q=...&system=...&limit=...
func (h *Handler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	matches := h.service.Search(q, vocabulary.System(c.QueryParam("system")), limit)
	if matches == nil {
		matches = []CodeMatch{}
	}
	return c.JSON(http.StatusOK, matches)
}

type suggestRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
	System  string `json:"system"`
}

// Suggest handles POST /api/v1/codes/suggest
func (h *Handler) Suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "field 'text' is required")
	}
	matches := h.service.Suggest(req.Text, req.Context, vocabulary.System(req.System))
	if matches == nil {
		matches = []CodeMatch{}
	}
	return c.JSON(http.StatusOK, matches)
}

type validateRequest struct {
	Code   string `json:"code"`
	System string `json:"system"`
}

// Validate handles POST /api/v1/codes/validate
func (h *Handler) Validate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" || req.System == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fields 'code' and 'system' are required")
	}
	return c.JSON(http.StatusOK, h.service.Validate(req.Code, vocabulary.System(req.System)))
}

type crossMapRequest struct {
	Code         string `json:"code"`
	SourceSystem string `json:"source_system"`
	TargetSystem string `json:"target_system"`
}

// CrossMap handles POST /api/v1/codes/crossmap
func (h *Handler) CrossMap(c echo.Context) error {
	var req crossMapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Code == "" || req.SourceSystem == "" || req.TargetSystem == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fields 'code', 'source_system' and 'target_system' are required")
	}
	mappings := h.service.CrossMap(req.Code, vocabulary.System(req.SourceSystem), vocabulary.System(req.TargetSystem))
	if mappings == nil {
		mappings = []CrossMapping{}
	}
	return c.JSON(http.StatusOK, mappings)
}

// GetHierarchy handles GET /api/v1/codes/hierarchy?code=...&system=...
func (h *Handler) GetHierarchy(c echo.Context) error {
	code := c.QueryParam("code")
	system := c.QueryParam("system")
	if code == "" || system == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameters 'code' and 'system' are required")
	}
	hierarchy, ok := h.service.Hierarchy(code, vocabulary.System(system))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "code not found")
	}
	return c.JSON(http.StatusOK, hierarchy)
}

// GetByCategory handles GET /api/v1/codes/category/:category?system=...
func (h *Handler) GetByCategory(c echo.Context) error {
	codes := h.service.CodesByCategory(c.Param("category"), vocabulary.System(c.QueryParam("system")))
	if codes == nil {
		codes = []*vocabulary.MedicalCode{}
	}
	return c.JSON(http.StatusOK, codes)
}

type billableRequest struct {
	DiagnosisCodes []string `json:"diagnosis_codes"`
	ProcedureCodes []string `json:"procedure_codes"`
}

// Billable handles POST /api/v1/codes/billable
func (h *Handler) Billable(c echo.Context) error {
	var req billableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.DiagnosisCodes) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "field 'diagnosis_codes' is required")
	}
	return c.JSON(http.StatusOK, h.service.Billable(req.DiagnosisCodes, req.ProcedureCodes))
}

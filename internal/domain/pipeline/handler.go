package pipeline

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mednlp/mednlp/internal/domain/forms"
)

// Handler provides REST endpoints for document processing.
type Handler struct {
	service *Service
}

// NewHandler creates a new pipeline handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers document routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/documents")
	g.POST("/process", h.Process)
	g.POST("/auto-fill", h.AutoFill)
	g.POST("/classify", h.Classify)
}

type processRequest struct {
	Text         string `json:"text"`
	DocumentType string `json:"document_type"`
}

// Process handles POST /api/v1/documents/process
func (h *Handler) Process(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "field 'text' is required")
	}
	return c.JSON(http.StatusOK, h.service.Process(c.Request().Context(), req.Text, req.DocumentType))
}

type autoFillRequest struct {
	Text     string              `json:"text"`
	FormType string              `json:"form_type"`
	Template *forms.FormTemplate `json:"template"`
}

// AutoFill handles POST /api/v1/documents/auto-fill
func (h *Handler) AutoFill(c echo.Context) error {
	var req autoFillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "field 'text' is required")
	}
	if req.FormType == "" && req.Template == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "field 'form_type' or 'template' is required")
	}

	result, err := h.service.AutoFill(c.Request().Context(), req.Text, req.FormType, req.Template)
	if err != nil {
		if errors.Is(err, forms.ErrUnknownFormType) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, result)
}

type classifyRequest struct {
	Text string `json:"text"`
}

// Classify handles POST /api/v1/documents/classify
func (h *Handler) Classify(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "field 'text' is required")
	}
	return c.JSON(http.StatusOK, h.service.Classify(c.Request().Context(), req.Text))
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GlossaryHandler handles HTTP requests for term explanations.
type GlossaryHandler struct {
	glossaryService service.GlossaryService
	logger          *logger.Logger
}

// NewGlossaryHandler creates a new GlossaryHandler.
func NewGlossaryHandler(glossaryService service.GlossaryService, logger *logger.Logger) *GlossaryHandler {
	return &GlossaryHandler{glossaryService: glossaryService, logger: logger}
}

// RegisterRoutes registers the glossary routes to the Echo group.
func (h *GlossaryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/explain/:term", h.ExplainTerm)
}

// ExplainTerm godoc
// @Summary Explain a financial term
// @Description Returns the fixed glossary definition for a term
// @Tags glossary
// @Produce  json
// @Param   term  path    string true    "Glossary term key"
// @Success 200 {object} dto.TermResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /explain/{term} [get]
func (h *GlossaryHandler) ExplainTerm(c echo.Context) error {
	term := c.Param("term")

	response, err := h.glossaryService.Explain(term)
	if err != nil {
		if errors.Is(err, service.ErrTermNotFound) {
			valid := strings.Join(h.glossaryService.Terms(), ", ")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown term: " + term + " (valid terms: " + valid + ")"})
		}
		h.logger.Error("Failed to explain term", logger.ErrorField(err), logger.StringField("term", term))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to explain term"})
	}

	return c.JSON(http.StatusOK, response)
}

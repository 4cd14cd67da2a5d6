package http

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// tickerPattern allows uppercase alphanumerics plus the dot and dash used by
// share classes (BRK.B, BF-B).
var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,12}$`)

// StockHandler handles HTTP requests for stock analysis.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stock/:ticker", h.GetStock)
}

// GetStock godoc
// @Summary Analyze a stock
// @Description Aggregates market data and news for a ticker and returns a heuristic recommendation
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Stock ticker symbol"
// @Success 200 {object} dto.StockAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stock/{ticker} [get]
func (h *StockHandler) GetStock(c echo.Context) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if !tickerPattern.MatchString(ticker) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticker: " + c.Param("ticker")})
	}

	result, err := h.stockService.Analyze(c.Request().Context(), ticker)
	if err != nil {
		if errors.Is(err, repository.ErrSymbolNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticker not found: " + ticker})
		}
		h.logger.Error("Failed to analyze stock", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream provider failure"})
	}

	return c.JSON(http.StatusOK, result)
}

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubYahooRepo struct {
	snapshot *dto.StockSnapshot
	err      error
}

func (s *stubYahooRepo) Get(ctx context.Context, symbol string) (*dto.StockSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

type stubNewsRepo struct {
	digest *dto.NewsDigest
	err    error
}

func (s *stubNewsRepo) GetDigest(ctx context.Context, param dto.GetNewsParam) (*dto.NewsDigest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.digest, nil
}

func floatPtr(v float64) *float64 { return &v }

func newTestServer(t *testing.T, yahooRepo repository.YahooFinanceRepository, newsRepo repository.NewsRepository) *echo.Echo {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Analyzer = config.DefaultAnalyzer()

	analyzer := service.NewStockAnalyzer(&cfg.Analyzer)
	stockSvc := service.NewStockService(cfg, log, yahooRepo, newsRepo, analyzer, nil)

	e := echo.New()
	root := e.Group("")
	NewStockHandler(stockSvc, log).RegisterRoutes(root)
	NewGlossaryHandler(service.NewGlossaryService(), log).RegisterRoutes(root)
	return e
}

func doRequest(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetStock_Success(t *testing.T) {
	yahooRepo := &stubYahooRepo{snapshot: &dto.StockSnapshot{
		Symbol:       "AAPL",
		Name:         "Apple Inc.",
		CurrentPrice: 205.35,
		TargetPrice:  floatPtr(233.36),
		PERatio:      floatPtr(31.93),
		MarketCap:    floatPtr(3.07e12),
	}}
	newsRepo := &stubNewsRepo{digest: &dto.NewsDigest{Symbol: "AAPL", Headlines: []string{"Apple unveils new iPhone"}}}

	rec := doRequest(newTestServer(t, yahooRepo, newsRepo), "/stock/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.StockAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body.Symbol)
	assert.Equal(t, "Apple Inc.", body.Name)
	require.NotNil(t, body.TargetDiff)
	assert.InDelta(t, 13.6, *body.TargetDiff, 0.05)
	assert.Contains(t, body.PEComment, "overvalued")
	assert.Equal(t, "3.07T", body.MarketCap)
	assert.Contains(t, []string{"Buy", "Hold", "Sell"}, body.Recommendation)
}

func TestGetStock_LowercaseTickerIsUppercased(t *testing.T) {
	yahooRepo := &stubYahooRepo{snapshot: &dto.StockSnapshot{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 100}}
	newsRepo := &stubNewsRepo{digest: &dto.NewsDigest{Symbol: "AAPL"}}

	rec := doRequest(newTestServer(t, yahooRepo, newsRepo), "/stock/aapl")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetStock_InvalidTicker(t *testing.T) {
	e := newTestServer(t, &stubYahooRepo{}, &stubNewsRepo{})

	rec := doRequest(e, "/stock/"+"AAPL%24%24") // AAPL$$
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "invalid ticker")
}

func TestGetStock_UnknownSymbol(t *testing.T) {
	yahooRepo := &stubYahooRepo{err: fmt.Errorf("%w: ZZZZINVALID", repository.ErrSymbolNotFound)}
	newsRepo := &stubNewsRepo{digest: &dto.NewsDigest{}}

	rec := doRequest(newTestServer(t, yahooRepo, newsRepo), "/stock/ZZZZINVALID")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "ZZZZINVALID")
}

func TestGetStock_ProviderFailure(t *testing.T) {
	yahooRepo := &stubYahooRepo{err: fmt.Errorf("%w: status 500", repository.ErrProvider)}
	newsRepo := &stubNewsRepo{digest: &dto.NewsDigest{}}

	rec := doRequest(newTestServer(t, yahooRepo, newsRepo), "/stock/AAPL")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetStock_NewsProviderFailure(t *testing.T) {
	yahooRepo := &stubYahooRepo{snapshot: &dto.StockSnapshot{Symbol: "AAPL", CurrentPrice: 100}}
	newsRepo := &stubNewsRepo{err: fmt.Errorf("%w: feed unreachable", repository.ErrProvider)}

	rec := doRequest(newTestServer(t, yahooRepo, newsRepo), "/stock/AAPL")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestExplainTerm_Known(t *testing.T) {
	e := newTestServer(t, &stubYahooRepo{}, &stubNewsRepo{})

	rec := doRequest(e, "/explain/eps")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.TermResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "eps", body.Term)
	assert.Contains(t, body.Meaning, "Earnings per share")
}

func TestExplainTerm_Unknown(t *testing.T) {
	e := newTestServer(t, &stubYahooRepo{}, &stubNewsRepo{})

	rec := doRequest(e, "/explain/ebitda")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "unknown term")
	assert.Contains(t, body.Error, "market_cap")
}

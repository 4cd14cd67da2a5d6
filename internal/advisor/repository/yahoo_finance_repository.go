package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"golang.org/x/time/rate"
)

const quoteSummaryModules = "price,summaryDetail,financialData,defaultKeyStatistics,calendarEvents"

// YahooFinanceRepository fetches market data for a ticker.
type YahooFinanceRepository interface {
	Get(ctx context.Context, symbol string) (*dto.StockSnapshot, error)
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a new YahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, symbol string) (*dto.StockSnapshot, error) {
	snapshot, err := r.getQuoteSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// History is a metric like any other: a failed chart call degrades the
	// snapshot instead of failing the request.
	history, err := r.getHistory(ctx, symbol)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to fetch price history", logger.ErrorField(err), logger.StringField("symbol", symbol))
	} else {
		snapshot.History = history
	}

	return snapshot, nil
}

func (r *yahooFinanceRepository) getQuoteSummary(ctx context.Context, symbol string) (*dto.StockSnapshot, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol), quoteSummaryModules)

	body, statusCode, err := r.sendRequest(ctx, u)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	var response dto.QuoteSummaryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode quote summary: %v", ErrProvider, err)
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: quote summary status %d", ErrProvider, statusCode)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	if apiErr := response.QuoteSummary.Error; apiErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrProvider, apiErr.Description)
	}

	result := response.QuoteSummary.Result[0]
	if result.Price.RegularMarketPrice.Raw == nil {
		return nil, fmt.Errorf("%w: %s has no market price", ErrSymbolNotFound, symbol)
	}

	name := result.Price.ShortName
	if name == "" {
		name = symbol
	}

	snapshot := &dto.StockSnapshot{
		Symbol:       symbol,
		Name:         name,
		CurrentPrice: *result.Price.RegularMarketPrice.Raw,
		TargetPrice:  result.FinancialData.TargetMeanPrice.Raw,
		PERatio:      result.SummaryDetail.TrailingPE.Raw,
		EPS:          result.DefaultKeyStatistics.TrailingEps.Raw,
		MarketCap:    result.Price.MarketCap.Raw,
		Beta:         result.SummaryDetail.Beta.Raw,
		DebtToEquity: result.FinancialData.DebtToEquity.Raw,
		FreeCashflow: result.FinancialData.FreeCashflow.Raw,
		EVToEBITDA:   result.DefaultKeyStatistics.EnterpriseToEbitda.Raw,
		PriceToBook:  result.DefaultKeyStatistics.PriceToBook.Raw,
	}

	// Yahoo reports yield, ROE and revenue growth as fractions; the API
	// speaks in percentage points.
	if raw := result.SummaryDetail.DividendYield.Raw; raw != nil {
		yield := *raw * 100
		snapshot.DividendYield = &yield
	}
	if raw := result.FinancialData.ReturnOnEquity.Raw; raw != nil {
		roe := *raw * 100
		snapshot.ROE = &roe
	}
	if raw := result.FinancialData.RevenueGrowth.Raw; raw != nil {
		growth := *raw * 100
		snapshot.RevenueGrowth = &growth
	}

	if dates := result.CalendarEvents.Earnings.EarningsDate; len(dates) > 0 && dates[0].Raw != nil {
		t := time.Unix(int64(*dates[0].Raw), 0).UTC()
		snapshot.NextEarnings = &t
	}
	if raw := result.CalendarEvents.ExDividendDate.Raw; raw != nil {
		t := time.Unix(int64(*raw), 0).UTC()
		snapshot.ExDividend = &t
	}

	return snapshot, nil
}

// getHistory returns a year of daily closes, oldest first, with null bars
// (holidays etc.) skipped.
func (r *yahooFinanceRepository) getHistory(ctx context.Context, symbol string) ([]float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1y",
		r.cfg.YahooFinance.BaseURL, url.PathEscape(symbol))

	body, statusCode, err := r.sendRequest(ctx, u)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: chart status %d", ErrProvider, statusCode)
	}

	var response dto.ChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode chart: %v", ErrProvider, err)
	}
	if apiErr := response.Chart.Error; apiErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrProvider, apiErr.Description)
	}
	if len(response.Chart.Result) == 0 || len(response.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: chart returned no data", ErrProvider)
	}

	quote := response.Chart.Result[0].Indicators.Quote[0]
	closes := make([]float64, 0, len(quote.Close))
	for _, c := range quote.Close {
		if c == nil {
			continue
		}
		closes = append(closes, *c)
	}
	return closes, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, url string) ([]byte, int, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("%w: wait for request limit: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: create request: %v", ErrProvider, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", logger.ErrorField(err), logger.StringField("url", url))
		return nil, 0, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read response body: %v", ErrProvider, err)
	}

	return body, resp.StatusCode, nil
}

package dto

import "time"

// StockSnapshot holds the raw per-ticker metrics returned by the market data
// provider. Optional metrics are nil when the provider omits them; a snapshot
// with missing metrics is still valid.
type StockSnapshot struct {
	Symbol        string
	Name          string
	CurrentPrice  float64
	TargetPrice   *float64
	PERatio       *float64
	EPS           *float64
	DividendYield *float64 // percentage points
	MarketCap     *float64 // raw currency units
	Beta          *float64
	DebtToEquity  *float64
	ROE           *float64 // percent
	RevenueGrowth *float64 // year-over-year, percent
	FreeCashflow  *float64 // raw currency units
	EVToEBITDA    *float64
	PriceToBook   *float64
	NextEarnings  *time.Time
	ExDividend    *time.Time
	History       []float64 // daily closes, oldest first
}

// NewsDigest holds recent headlines for a ticker in the provider's
// relevance order. Zero headlines is a valid digest.
type NewsDigest struct {
	Symbol    string
	Headlines []string
}

// StockAnalysisResponse is the combined document returned by GET /stock/:ticker.
type StockAnalysisResponse struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	CurrentPrice  float64  `json:"current_price"`
	TargetPrice   *float64 `json:"target_price,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	EPS           *float64 `json:"eps,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	MarketCap     string   `json:"market_cap"`

	Recommendation       string   `json:"recommendation"`
	PoliticalRisk        string   `json:"political_risk"`
	NewsSentiment        string   `json:"news_sentiment"`
	TargetDiff           *float64 `json:"target_diff,omitempty"`
	PEComment            string   `json:"pe_comment"`
	TargetComment        string   `json:"target_comment"`
	RecommendationReason string   `json:"recommendation_reason"`
	TrendComment         string   `json:"trend_comment"`
	RecentHeadlines      []string `json:"recent_headlines"`
	EPSComment           string   `json:"eps_comment"`
	DividendComment      string   `json:"dividend_comment"`
	MarketCapComment     string   `json:"market_cap_comment"`

	KPISummary      string   `json:"kpi_summary"`
	SupportLevel    string   `json:"support_level"`
	ResistanceLevel string   `json:"resistance_level"`
	MA50            *float64 `json:"ma50,omitempty"`
	MA200           *float64 `json:"ma200,omitempty"`
	RSI             *float64 `json:"rsi,omitempty"`
	Volatility      *float64 `json:"volatility,omitempty"`
	Drawdown        *float64 `json:"drawdown,omitempty"`
	Beta            *float64 `json:"beta,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	ROE             *float64 `json:"roe,omitempty"`
	RevenueYoY      *float64 `json:"revenue_yoy,omitempty"`
	FreeCashflow    *float64 `json:"fcf,omitempty"`
	EVToEBITDA      *float64 `json:"ev_ebitda,omitempty"`
	PriceToBook     *float64 `json:"price_to_book,omitempty"`
	ValueAtRisk     *float64 `json:"var,omitempty"`
	NextEarnings    string   `json:"next_earnings"`
	NextDividend    string   `json:"next_dividend"`
}

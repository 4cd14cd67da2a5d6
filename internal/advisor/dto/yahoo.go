package dto

// FormattedValue is Yahoo's {raw, fmt} number wrapper. Only the raw value is
// used; absent metrics decode to a nil Raw.
type FormattedValue struct {
	Raw *float64 `json:"raw"`
}

// QuoteSummaryResponse mirrors the quoteSummary API envelope for the modules
// requested by the market data fetcher.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *YahooError          `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummaryResult holds the per-module metric blocks.
type QuoteSummaryResult struct {
	Price struct {
		ShortName          string         `json:"shortName"`
		Symbol             string         `json:"symbol"`
		RegularMarketPrice FormattedValue `json:"regularMarketPrice"`
		MarketCap          FormattedValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE    FormattedValue `json:"trailingPE"`
		DividendYield FormattedValue `json:"dividendYield"`
		Beta          FormattedValue `json:"beta"`
	} `json:"summaryDetail"`
	FinancialData struct {
		TargetMeanPrice FormattedValue `json:"targetMeanPrice"`
		DebtToEquity    FormattedValue `json:"debtToEquity"`
		ReturnOnEquity  FormattedValue `json:"returnOnEquity"`
		RevenueGrowth   FormattedValue `json:"revenueGrowth"`
		FreeCashflow    FormattedValue `json:"freeCashflow"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		TrailingEps        FormattedValue `json:"trailingEps"`
		EnterpriseToEbitda FormattedValue `json:"enterpriseToEbitda"`
		PriceToBook        FormattedValue `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	CalendarEvents struct {
		Earnings struct {
			EarningsDate []FormattedValue `json:"earningsDate"`
		} `json:"earnings"`
		ExDividendDate FormattedValue `json:"exDividendDate"`
	} `json:"calendarEvents"`
}

// ChartResponse mirrors the v8 chart API envelope.
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"chart"`
}

// YahooError is the provider's error block.
type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

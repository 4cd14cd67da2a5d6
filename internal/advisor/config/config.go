package config

import (
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/config"
)

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// News holds the configuration for the news provider.
type News struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	MaxHeadlines int    `mapstructure:"max_headlines"`
	WindowDays   int    `mapstructure:"window_days"`
}

// Analyzer holds the heuristic thresholds and keyword lists. The cutoffs are
// ad hoc by nature, so they live in configuration rather than code.
type Analyzer struct {
	PEUndervalued    float64 `mapstructure:"pe_undervalued"`
	PEOvervalued     float64 `mapstructure:"pe_overvalued"`
	EPSStrong        float64 `mapstructure:"eps_strong"`
	EPSModerate      float64 `mapstructure:"eps_moderate"`
	DividendHigh     float64 `mapstructure:"dividend_high"`
	DividendModerate float64 `mapstructure:"dividend_moderate"`
	LargeCap         float64 `mapstructure:"large_cap"`
	MidCap           float64 `mapstructure:"mid_cap"`
	FlatBand         float64 `mapstructure:"flat_band"`
	TrendWindowDays  int     `mapstructure:"trend_window_days"`

	PoliticalKeywords []string `mapstructure:"political_keywords"`
	PositiveKeywords  []string `mapstructure:"positive_keywords"`
	NegativeKeywords  []string `mapstructure:"negative_keywords"`
}

// Telegram holds configuration for the optional Buy/Sell alert notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the advisor service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	API          config.API    `mapstructure:"api"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	News         News          `mapstructure:"news"`
	Analyzer     Analyzer      `mapstructure:"analyzer"`
	Telegram     Telegram      `mapstructure:"telegram"`
}

// Load loads the advisor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.YahooFinance.BaseURL == "" {
		c.YahooFinance.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.YahooFinance.MaxRequestPerMinute == 0 {
		c.YahooFinance.MaxRequestPerMinute = 60
	}
	if c.News.Provider == "" {
		c.News.Provider = common.NewsProviderRSS
	}
	if c.News.BaseURL == "" {
		if c.News.Provider == common.NewsProviderAPI {
			c.News.BaseURL = "https://newsapi.org"
		} else {
			c.News.BaseURL = "https://news.google.com"
		}
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.WindowDays == 0 {
		c.News.WindowDays = 7
	}
	c.Analyzer.applyDefaults()
}

// DefaultAnalyzer returns an Analyzer carrying the default thresholds and
// keyword lists.
func DefaultAnalyzer() Analyzer {
	var a Analyzer
	a.applyDefaults()
	return a
}

func (a *Analyzer) applyDefaults() {
	if a.PEUndervalued == 0 {
		a.PEUndervalued = 15
	}
	if a.PEOvervalued == 0 {
		a.PEOvervalued = 25
	}
	if a.EPSStrong == 0 {
		a.EPSStrong = 5
	}
	if a.EPSModerate == 0 {
		a.EPSModerate = 1
	}
	if a.DividendHigh == 0 {
		a.DividendHigh = 3
	}
	if a.DividendModerate == 0 {
		a.DividendModerate = 1
	}
	if a.LargeCap == 0 {
		a.LargeCap = 200e9
	}
	if a.MidCap == 0 {
		a.MidCap = 10e9
	}
	if a.FlatBand == 0 {
		a.FlatBand = 0.5
	}
	if a.TrendWindowDays == 0 {
		a.TrendWindowDays = 30
	}
	if len(a.PoliticalKeywords) == 0 {
		a.PoliticalKeywords = []string{
			"tariff", "sanction", "sanctions", "regulation", "regulator",
			"antitrust", "lawsuit", "probe", "investigation", "subpoena",
			"congress", "senate", "white house", "sec", "ftc", "doj",
			"export control", "ban", "china", "russia", "election",
		}
	}
	if len(a.PositiveKeywords) == 0 {
		a.PositiveKeywords = []string{
			"surge", "soar", "rally", "record", "beat", "beats", "growth",
			"upgrade", "profit", "strong", "gain", "gains", "bullish",
			"outperform", "expands", "wins",
		}
	}
	if len(a.NegativeKeywords) == 0 {
		a.NegativeKeywords = []string{
			"fall", "falls", "drop", "drops", "plunge", "miss", "misses",
			"downgrade", "loss", "losses", "weak", "cut", "cuts", "recall",
			"fraud", "bearish", "layoff", "layoffs", "slump", "warns",
		}
	}
}

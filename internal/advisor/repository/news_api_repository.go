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
)

// newsAPIRepository implements NewsRepository against a keyed news search API.
type newsAPIRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

func newNewsAPIRepository(cfg *config.Config, log *logger.Logger) *newsAPIRepository {
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (r *newsAPIRepository) GetDigest(ctx context.Context, param dto.GetNewsParam) (*dto.NewsDigest, error) {
	query := param.CompanyName
	if query == "" {
		query = param.Symbol
	}
	from := time.Now().AddDate(0, 0, -r.cfg.News.WindowDays).Format("2006-01-02")

	u := fmt.Sprintf("%s/v2/everything?q=%s&from=%s&sortBy=publishedAt&language=en&pageSize=%d",
		r.cfg.News.BaseURL, url.QueryEscape(query), from, r.cfg.News.MaxHeadlines)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrProvider, err)
	}
	req.Header.Set("X-Api-Key", r.cfg.News.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to news API", logger.ErrorField(err), logger.StringField("query", query))
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrProvider, err)
	}

	var response dto.NewsAPIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode news response: %v", ErrProvider, err)
	}
	if resp.StatusCode != http.StatusOK || response.Status != "ok" {
		return nil, fmt.Errorf("%w: news API status %d code %s: %s", ErrProvider, resp.StatusCode, response.Code, response.Message)
	}

	digest := &dto.NewsDigest{Symbol: param.Symbol}
	for _, article := range response.Articles {
		if len(digest.Headlines) >= r.cfg.News.MaxHeadlines {
			break
		}
		if article.Title == "" {
			continue
		}
		digest.Headlines = append(digest.Headlines, article.Title)
	}

	r.log.DebugContext(ctx, "Fetched headlines from news API",
		logger.StringField("symbol", param.Symbol),
		logger.IntField("headlines", len(digest.Headlines)),
	)

	return digest, nil
}

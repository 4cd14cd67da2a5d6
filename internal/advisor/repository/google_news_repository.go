package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// googleNewsRepository implements NewsRepository on top of the Google News
// RSS feed, which needs no API key.
type googleNewsRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

func newGoogleNewsRepository(cfg *config.Config, log *logger.Logger) *googleNewsRepository {
	return &googleNewsRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (r *googleNewsRepository) GetDigest(ctx context.Context, param dto.GetNewsParam) (*dto.NewsDigest, error) {
	query := param.CompanyName
	if query == "" {
		query = param.Symbol + " stock"
	}
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		r.cfg.News.BaseURL, url.QueryEscape(query))

	fp := gofeed.NewParser()
	fp.Client = r.httpClient
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	cutoff := time.Now().AddDate(0, 0, -r.cfg.News.WindowDays)
	digest := &dto.NewsDigest{Symbol: param.Symbol}
	for _, item := range feed.Items {
		if len(digest.Headlines) >= r.cfg.News.MaxHeadlines {
			break
		}
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		headline := cleanHeadline(item.Title)
		if headline == "" {
			headline = htmlToText(item.Description)
		}
		if headline == "" {
			continue
		}
		digest.Headlines = append(digest.Headlines, headline)
	}

	r.log.DebugContext(ctx, "Fetched headlines from RSS feed",
		logger.StringField("symbol", param.Symbol),
		logger.IntField("headlines", len(digest.Headlines)),
	)

	return digest, nil
}

// cleanHeadline strips the " - Publisher" suffix Google News appends to item
// titles.
func cleanHeadline(title string) string {
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}

// htmlToText extracts the visible text from an HTML fragment.
func htmlToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

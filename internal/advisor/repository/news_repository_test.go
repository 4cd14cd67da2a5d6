package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsTestConfig(t *testing.T, provider, baseURL string) (*config.Config, *logger.Logger) {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.News.Provider = provider
	cfg.News.BaseURL = baseURL
	cfg.News.APIKey = "test-key"
	cfg.News.MaxHeadlines = 5
	cfg.News.WindowDays = 7
	return cfg, log
}

func TestNewNewsRepository_ProviderSelection(t *testing.T) {
	cfg, log := newsTestConfig(t, common.NewsProviderRSS, "http://example.invalid")
	repo, err := NewNewsRepository(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &googleNewsRepository{}, repo)

	cfg.News.Provider = common.NewsProviderAPI
	repo, err = NewNewsRepository(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &newsAPIRepository{}, repo)

	cfg.News.APIKey = ""
	_, err = NewNewsRepository(cfg, log)
	assert.Error(t, err)

	cfg.News.Provider = "carrier-pigeon"
	_, err = NewNewsRepository(cfg, log)
	assert.Error(t, err)
}

func TestNewsAPIGetDigest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Contains(t, r.URL.RawQuery, "q=AAPL")
		fmt.Fprint(w, `{
		  "status": "ok",
		  "totalResults": 3,
		  "articles": [
		    {"title": "Apple shares surge after record quarter", "publishedAt": "2026-08-28T10:00:00Z", "source": {"name": "Wire"}},
		    {"title": "", "publishedAt": "2026-08-28T09:00:00Z", "source": {"name": "Wire"}},
		    {"title": "Apple faces antitrust probe", "publishedAt": "2026-08-27T12:00:00Z", "source": {"name": "Post"}}
		  ]
		}`)
	}))
	defer server.Close()

	cfg, log := newsTestConfig(t, common.NewsProviderAPI, server.URL)
	repo := newNewsAPIRepository(cfg, log)

	digest, err := repo.GetDigest(context.Background(), dto.GetNewsParam{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", digest.Symbol)
	assert.Equal(t, []string{
		"Apple shares surge after record quarter",
		"Apple faces antitrust probe",
	}, digest.Headlines)
}

func TestNewsAPIGetDigest_CapsHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
		  "status": "ok",
		  "totalResults": 3,
		  "articles": [
		    {"title": "one"}, {"title": "two"}, {"title": "three"}
		  ]
		}`)
	}))
	defer server.Close()

	cfg, log := newsTestConfig(t, common.NewsProviderAPI, server.URL)
	cfg.News.MaxHeadlines = 2
	repo := newNewsAPIRepository(cfg, log)

	digest, err := repo.GetDigest(context.Background(), dto.GetNewsParam{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, digest.Headlines)
}

func TestNewsAPIGetDigest_EmptyResultIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok", "totalResults": 0, "articles": []}`)
	}))
	defer server.Close()

	cfg, log := newsTestConfig(t, common.NewsProviderAPI, server.URL)
	repo := newNewsAPIRepository(cfg, log)

	digest, err := repo.GetDigest(context.Background(), dto.GetNewsParam{Symbol: "OBSCURE"})
	require.NoError(t, err)
	assert.Empty(t, digest.Headlines)
}

func TestNewsAPIGetDigest_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"}`)
	}))
	defer server.Close()

	cfg, log := newsTestConfig(t, common.NewsProviderAPI, server.URL)
	repo := newNewsAPIRepository(cfg, log)

	_, err := repo.GetDigest(context.Background(), dto.GetNewsParam{Symbol: "AAPL"})
	assert.ErrorIs(t, err, ErrProvider)
}

func TestGoogleNewsGetDigest(t *testing.T) {
	recent := time.Now().Add(-2 * time.Hour).Format(time.RFC1123Z)
	stale := time.Now().AddDate(0, 0, -30).Format(time.RFC1123Z)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rss/search", r.URL.Path)
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Google News</title>
    <item>
      <title>Apple shares rally on strong earnings - Example Wire</title>
      <pubDate>%s</pubDate>
      <description>&lt;a href="https://example.com"&gt;Apple shares rally&lt;/a&gt;</description>
    </item>
    <item>
      <title>Old story outside the window - Example Post</title>
      <pubDate>%s</pubDate>
    </item>
    <item>
      <title></title>
      <pubDate>%s</pubDate>
      <description>&lt;b&gt;Apple expands retail footprint&lt;/b&gt;</description>
    </item>
  </channel>
</rss>`, recent, stale, recent)
	}))
	defer server.Close()

	cfg, log := newsTestConfig(t, common.NewsProviderRSS, server.URL)
	repo := newGoogleNewsRepository(cfg, log)

	digest, err := repo.GetDigest(context.Background(), dto.GetNewsParam{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Apple shares rally on strong earnings",
		"Apple expands retail footprint",
	}, digest.Headlines)
}

func TestGoogleNewsGetDigest_FeedUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg, log := newsTestConfig(t, common.NewsProviderRSS, server.URL)
	repo := newGoogleNewsRepository(cfg, log)

	_, err := repo.GetDigest(context.Background(), dto.GetNewsParam{Symbol: "AAPL"})
	assert.ErrorIs(t, err, ErrProvider)
}

func TestCleanHeadline(t *testing.T) {
	assert.Equal(t, "Apple shares rally", cleanHeadline("Apple shares rally - Example Wire"))
	assert.Equal(t, "No suffix here", cleanHeadline("No suffix here"))
	assert.Equal(t, "", cleanHeadline("  "))
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Apple expands retail footprint", htmlToText("<b>Apple expands retail footprint</b>"))
	assert.Equal(t, "", htmlToText(""))
}

package repository

import (
	"context"
	"fmt"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"
)

// NewsRepository fetches recent headlines mentioning a ticker or company.
type NewsRepository interface {
	GetDigest(ctx context.Context, param dto.GetNewsParam) (*dto.NewsDigest, error)
}

// NewNewsRepository creates the news repository selected by configuration.
func NewNewsRepository(cfg *config.Config, log *logger.Logger) (NewsRepository, error) {
	switch cfg.News.Provider {
	case common.NewsProviderAPI:
		if cfg.News.APIKey == "" {
			return nil, fmt.Errorf("news provider %q requires an API key", cfg.News.Provider)
		}
		return newNewsAPIRepository(cfg, log), nil
	case common.NewsProviderRSS:
		return newGoogleNewsRepository(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.News.Provider)
	}
}

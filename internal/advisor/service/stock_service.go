package service

import (
	"context"
	"sync"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/telegram"
	"golang-stock-advisor/pkg/utils"
)

// StockService orchestrates the fetchers and the analyzer for one request.
type StockService interface {
	Analyze(ctx context.Context, symbol string) (*dto.StockAnalysisResponse, error)
}

type stockService struct {
	cfg          *config.Config
	log          *logger.Logger
	yahooFinance repository.YahooFinanceRepository
	newsRepo     repository.NewsRepository
	analyzer     *StockAnalyzer
	telegramBot  telegram.Notifier
}

// NewStockService creates a new StockService. telegramBot may be nil when
// alerting is disabled.
func NewStockService(cfg *config.Config, log *logger.Logger,
	yahooFinance repository.YahooFinanceRepository,
	newsRepo repository.NewsRepository,
	analyzer *StockAnalyzer,
	telegramBot telegram.Notifier) StockService {
	return &stockService{
		cfg:          cfg,
		log:          log,
		yahooFinance: yahooFinance,
		newsRepo:     newsRepo,
		analyzer:     analyzer,
		telegramBot:  telegramBot,
	}
}

// Analyze fetches market data and headlines concurrently, then runs the
// heuristic analyzer. Both fetches must settle before analysis starts.
func (s *stockService) Analyze(ctx context.Context, symbol string) (*dto.StockAnalysisResponse, error) {
	var (
		wg       sync.WaitGroup
		snapshot *dto.StockSnapshot
		digest   *dto.NewsDigest
		snapErr  error
		newsErr  error
	)

	wg.Add(2)
	utils.GoSafe(s.log, func() {
		defer wg.Done()
		snapshot, snapErr = s.yahooFinance.Get(ctx, symbol)
	})
	utils.GoSafe(s.log, func() {
		defer wg.Done()
		digest, newsErr = s.newsRepo.GetDigest(ctx, dto.GetNewsParam{Symbol: symbol})
	})
	wg.Wait()

	if snapErr != nil {
		s.log.ErrorContext(ctx, "Failed to get stock data", logger.ErrorField(snapErr), logger.StringField("symbol", symbol))
		return nil, snapErr
	}
	if newsErr != nil {
		s.log.ErrorContext(ctx, "Failed to get news digest", logger.ErrorField(newsErr), logger.StringField("symbol", symbol))
		return nil, newsErr
	}

	result := s.analyzer.Analyze(snapshot, digest)

	s.log.DebugContext(ctx, "Stock analyzed",
		logger.StringField("symbol", symbol),
		logger.StringField("recommendation", result.Recommendation),
		logger.StringField("sentiment", result.NewsSentiment),
	)

	s.notify(result)

	return result, nil
}

// notify sends a Telegram alert for actionable verdicts. Failures are logged
// and never affect the request.
func (s *stockService) notify(result *dto.StockAnalysisResponse) {
	if !s.cfg.Telegram.Enabled || s.telegramBot == nil || result.Recommendation == common.RecommendationHold {
		return
	}
	message := telegram.FormatStockAdvisory(result)
	utils.GoSafe(s.log, func() {
		if err := s.telegramBot.SendMessage(message); err != nil {
			s.log.Error("Failed to send Telegram alert", logger.ErrorField(err), logger.StringField("symbol", result.Symbol))
		}
	})
}

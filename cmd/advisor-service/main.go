package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	delivery "golang-stock-advisor/internal/advisor/delivery/http"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the stock advisor service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Stock Advisor Service", logger.Field("name", cfg.App.Name))

	// Initialize repositories
	yahooFinanceRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	newsRepo, err := repository.NewNewsRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize news repository", logger.ErrorField(err))
	}

	// Initialize optional Telegram notifier
	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	analyzer := service.NewStockAnalyzer(&cfg.Analyzer)
	stockSvc := service.NewStockService(cfg, appLogger, yahooFinanceRepo, newsRepo, analyzer, notifier)
	glossarySvc := service.NewGlossaryService()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize handlers and routes
	root := e.Group("")
	stockHandler := delivery.NewStockHandler(stockSvc, appLogger)
	stockHandler.RegisterRoutes(root)

	glossaryHandler := delivery.NewGlossaryHandler(glossarySvc, appLogger)
	glossaryHandler.RegisterRoutes(root)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "advisor-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-advisor.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing advisor-service CLI: %s\n", err)
		os.Exit(1)
	}
}

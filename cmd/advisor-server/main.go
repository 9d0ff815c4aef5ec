package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/advisor/internal/clients/eodhd"
	"github.com/bobmcallan/advisor/internal/clients/gemini"
	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/server"
	"github.com/bobmcallan/advisor/internal/services/advice"
	"github.com/bobmcallan/advisor/internal/services/forecast"
	"github.com/bobmcallan/advisor/internal/services/market"
	"github.com/bobmcallan/advisor/internal/services/metrics"
	"github.com/bobmcallan/advisor/internal/services/pipeline"
	"github.com/bobmcallan/advisor/internal/services/risk"
	"github.com/bobmcallan/advisor/internal/storage"
)

func main() {
	configPath := os.Getenv("ADVISOR_CONFIG")
	if configPath == "" {
		configPath = "advisor.toml"
	}

	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)
	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", cfg.Environment).
		Msg("Starting advisor server")

	if cfg.Clients.EODHD.APIKey == "" {
		logger.Fatal().Msg("EODHD API key is required (set EODHD_API_KEY)")
	}
	if cfg.Clients.Gemini.APIKey == "" {
		logger.Fatal().Msg("Gemini API key is required (set GEMINI_API_KEY)")
	}

	ctx := context.Background()

	prices := eodhd.NewClient(cfg.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(cfg.Clients.EODHD.BaseURL),
		eodhd.WithRateLimit(cfg.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(cfg.Clients.EODHD.GetTimeout()),
		eodhd.WithLogger(logger),
	)

	textgen, err := gemini.NewClient(ctx, cfg.Clients.Gemini.APIKey,
		gemini.WithModel(cfg.Clients.Gemini.Model),
		gemini.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	store, err := storage.NewBadgerStore(cfg.Storage.Path, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open portfolio store")
	}
	defer store.Close()

	metricsService := metrics.NewService(prices, cfg.Analysis.MetricsPeriod, logger)
	riskService := risk.NewService(logger)
	marketService := market.NewService(prices, textgen, logger)
	forecastService := forecast.NewService(prices, cfg.Analysis.ForecastPeriod, cfg.Analysis.Benchmarks, logger)
	adviceService := advice.NewService(textgen, logger)
	pipelineService := pipeline.NewService(
		metricsService,
		riskService,
		marketService,
		forecastService,
		adviceService,
		textgen,
		cfg.Analysis.HorizonDays,
		logger,
	)

	srv := server.NewServer(cfg, pipelineService, store, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	logger.Info().
		Int("port", cfg.Server.Port).
		Msg("Server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("Server stopped")
}

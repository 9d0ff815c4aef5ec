// Package interfaces defines service contracts for Advisor
package interfaces

import (
	"context"

	"github.com/bobmcallan/advisor/internal/models"
)

// MetricsService computes portfolio valuations and allocations
type MetricsService interface {
	// Compute values each asset from price history and derives allocations,
	// category rollups and historical returns. Assets without resolvable
	// history are silently excluded.
	Compute(ctx context.Context, portfolio models.Portfolio) (*models.PortfolioMetrics, error)
}

// RiskService scores portfolio risk and category structure
type RiskService interface {
	// AssessRisk derives the composite risk score and the matching
	// recommendation set from computed metrics.
	AssessRisk(metrics *models.PortfolioMetrics) (*models.RiskAssessment, []models.Recommendation)

	// AnalyzeCategories derives diversification and concentration measures.
	AnalyzeCategories(metrics *models.PortfolioMetrics) *models.CategoryAnalysis
}

// ForecastService produces recursive multi-day price forecasts
type ForecastService interface {
	// Forecast trains on the ticker's history and predicts horizonDays
	// future closes. Fails outright when history is missing or too short.
	Forecast(ctx context.Context, ticker string, horizonDays int) (*models.ForecastResult, error)

	// Compare forecasts the ticker and the benchmark indices, and computes
	// the correlation between their forecast changes.
	Compare(ctx context.Context, ticker string, horizonDays int) (*models.ComparativeForecast, error)
}

// AdviceService maps goals to target risk profiles and advice
type AdviceService interface {
	// Advise classifies the goal, selects a target profile from the current
	// risk level and asks the text-generation capability for a narrative,
	// falling back to a fixed payload when the narrative cannot be parsed.
	Advise(ctx context.Context, metrics *models.PortfolioMetrics, risk *models.RiskAssessment, goal string) (*models.InvestmentAdvice, error)
}

// MarketAnalysisService summarizes market sentiment for a holding
type MarketAnalysisService interface {
	Analyze(ctx context.Context, ticker string, categories []string) (*models.MarketAnalysis, error)
}

// PipelineService runs the full analysis workflow
type PipelineService interface {
	// Run executes the five-stage pipeline over an isolated state. The
	// returned result always carries the outputs of completed stages; a
	// non-empty Error means the run short-circuited.
	Run(ctx context.Context, portfolio models.Portfolio, goals []string) *models.AnalysisResult
}

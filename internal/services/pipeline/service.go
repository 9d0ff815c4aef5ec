// Package pipeline orchestrates the five-stage analysis workflow: risk
// assessment, market analysis, forecasting, investment advice and report
// generation.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// DefaultHorizonDays is the forecast horizon used when none is configured.
const DefaultHorizonDays = 30

// stage is one pipeline step. Stages receive and return the state by value;
// a stage signals failure by setting state.Error, which stops the run before
// the next stage.
type stage struct {
	name string
	run  func(ctx context.Context, state models.AnalysisState) models.AnalysisState
}

// Service implements PipelineService
type Service struct {
	metrics     interfaces.MetricsService
	risk        interfaces.RiskService
	market      interfaces.MarketAnalysisService
	forecast    interfaces.ForecastService
	advice      interfaces.AdviceService
	textgen     interfaces.TextGenClient
	horizonDays int
	logger      *common.Logger
}

// NewService creates a new pipeline service
func NewService(
	metrics interfaces.MetricsService,
	risk interfaces.RiskService,
	market interfaces.MarketAnalysisService,
	forecast interfaces.ForecastService,
	advice interfaces.AdviceService,
	textgen interfaces.TextGenClient,
	horizonDays int,
	logger *common.Logger,
) *Service {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Service{
		metrics:     metrics,
		risk:        risk,
		market:      market,
		forecast:    forecast,
		advice:      advice,
		textgen:     textgen,
		horizonDays: horizonDays,
		logger:      logger,
	}
}

// Run executes the pipeline over an isolated state. Each stage runs only if
// every prior stage succeeded; the result always carries the outputs of the
// stages that completed.
func (s *Service) Run(ctx context.Context, portfolio models.Portfolio, goals []string) *models.AnalysisResult {
	if len(goals) == 0 {
		goals = models.DefaultGoals
	}

	state := models.AnalysisState{
		RunID:     uuid.New().String(),
		Portfolio: portfolio,
		Goals:     goals,
	}

	s.logger.Info().
		Str("run_id", state.RunID).
		Int("assets", len(portfolio.Assets)).
		Strs("goals", goals).
		Msg("Starting analysis run")

	for _, st := range s.stages() {
		state = st.run(ctx, state)
		if state.Error != "" {
			s.logger.Warn().
				Str("run_id", state.RunID).
				Str("stage", st.name).
				Str("error", state.Error).
				Msg("Analysis run short-circuited")
			return state.Result()
		}
		s.logger.Debug().Str("run_id", state.RunID).Str("stage", st.name).Msg("Stage complete")
	}

	s.logger.Info().Str("run_id", state.RunID).Msg("Analysis run complete")
	return state.Result()
}

func (s *Service) stages() []stage {
	return []stage{
		{"risk_assessment", s.riskAssessmentStage},
		{"market_analysis", s.marketAnalysisStage},
		{"forecasting", s.forecastingStage},
		{"investment_advice", s.investmentAdviceStage},
		{"report_generator", s.reportStage},
	}
}

// riskAssessmentStage values the portfolio and scores its risk and category
// structure.
func (s *Service) riskAssessmentStage(ctx context.Context, state models.AnalysisState) models.AnalysisState {
	metrics, err := s.metrics.Compute(ctx, state.Portfolio)
	if err != nil {
		state.Error = fmt.Sprintf("Risk assessment failed: %v", err)
		return state
	}

	assessment, recommendations := s.risk.AssessRisk(metrics)

	state.Metrics = metrics
	state.RiskAssessment = assessment
	state.Recommendations = recommendations
	state.CategoryAnalysis = s.risk.AnalyzeCategories(metrics)
	return state
}

// marketAnalysisStage summarizes sentiment for the largest holding.
func (s *Service) marketAnalysisStage(ctx context.Context, state models.AnalysisState) models.AnalysisState {
	ticker := state.Metrics.LargestHolding()
	if ticker == "" {
		state.Error = "Market analysis failed: no valued holdings"
		return state
	}

	analysis, err := s.market.Analyze(ctx, ticker, state.Metrics.Categories())
	if err != nil {
		state.Error = fmt.Sprintf("Market analysis failed: %v", err)
		return state
	}

	state.MarketAnalysis = analysis
	return state
}

// forecastingStage forecasts the largest holding and compares it with the
// benchmark indices.
func (s *Service) forecastingStage(ctx context.Context, state models.AnalysisState) models.AnalysisState {
	ticker := state.Metrics.LargestHolding()
	if ticker == "" {
		state.Error = "Could not determine largest holding for forecasting"
		return state
	}

	comparison, err := s.forecast.Compare(ctx, ticker, s.horizonDays)
	if err != nil {
		state.Error = fmt.Sprintf("Forecasting failed: %v", err)
		return state
	}

	state.Forecasting = comparison
	return state
}

// investmentAdviceStage produces advice for every goal.
func (s *Service) investmentAdviceStage(ctx context.Context, state models.AnalysisState) models.AnalysisState {
	advice := make(map[string]*models.InvestmentAdvice, len(state.Goals))
	for _, goal := range state.Goals {
		result, err := s.advice.Advise(ctx, state.Metrics, state.RiskAssessment, goal)
		if err != nil {
			state.Error = fmt.Sprintf("Investment advice generation failed: %v", err)
			return state
		}
		advice[goal] = result
	}

	state.InvestmentAdvice = advice
	return state
}

// reportStage asks the text-generation capability for the final client-facing
// report over every prior stage's output.
func (s *Service) reportStage(ctx context.Context, state models.AnalysisState) models.AnalysisState {
	report, err := s.textgen.GenerateContent(ctx, buildReportPrompt(state))
	if err != nil {
		state.Error = fmt.Sprintf("Report generation failed: %v", err)
		return state
	}

	state.Report = strings.TrimSpace(report)
	return state
}

func buildReportPrompt(state models.AnalysisState) string {
	var b strings.Builder
	b.WriteString("You are a professional financial advisor. Create a comprehensive report based on the following analysis:\n\n")
	fmt.Fprintf(&b, "1. Risk Assessment: %s\n\n", compactJSON(state.RiskAssessment))
	fmt.Fprintf(&b, "2. Portfolio Categories: %s\n\n", compactJSON(state.CategoryAnalysis))
	fmt.Fprintf(&b, "3. Market Analysis: %s\n\n", compactJSON(state.MarketAnalysis))
	fmt.Fprintf(&b, "4. Forecasting Results: %s\n\n", compactJSON(state.Forecasting))
	fmt.Fprintf(&b, "5. Investment Advice: %s\n\n", compactJSON(state.InvestmentAdvice))
	b.WriteString("Create a well-structured, professional report that summarizes all these findings in a clear, concise, and actionable format for the client.")
	return b.String()
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Ensure Service implements PipelineService
var _ interfaces.PipelineService = (*Service)(nil)

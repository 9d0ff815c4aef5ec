package models

// AnalysisState is the record threaded through the pipeline stages. It is
// passed by value between stages; each run owns its own instance.
type AnalysisState struct {
	RunID            string
	Portfolio        Portfolio
	Goals            []string
	Metrics          *PortfolioMetrics
	RiskAssessment   *RiskAssessment
	Recommendations  []Recommendation
	CategoryAnalysis *CategoryAnalysis
	MarketAnalysis   *MarketAnalysis
	Forecasting      *ComparativeForecast
	InvestmentAdvice map[string]*InvestmentAdvice
	Report           string
	Error            string
}

// AnalysisDetails is the per-stage output surface of a completed (or
// short-circuited) analysis run.
type AnalysisDetails struct {
	RiskAssessment   *RiskAssessment              `json:"risk_assessment"`
	CategoryAnalysis *CategoryAnalysis            `json:"category_analysis"`
	MarketAnalysis   *MarketAnalysis              `json:"market_analysis"`
	Forecasting      *ComparativeForecast         `json:"forecasting"`
	InvestmentAdvice map[string]*InvestmentAdvice `json:"investment_advice"`
}

// AnalysisResult is the caller-facing result. An empty Error signals success;
// any other value means the pipeline short-circuited and Details reflects
// only the stages that completed.
type AnalysisResult struct {
	Report  string          `json:"report"`
	Error   string          `json:"error"`
	Details AnalysisDetails `json:"details"`
}

// Result converts a terminal state into the caller-facing result.
func (s AnalysisState) Result() *AnalysisResult {
	return &AnalysisResult{
		Report: s.Report,
		Error:  s.Error,
		Details: AnalysisDetails{
			RiskAssessment:   s.RiskAssessment,
			CategoryAnalysis: s.CategoryAnalysis,
			MarketAnalysis:   s.MarketAnalysis,
			Forecasting:      s.Forecasting,
			InvestmentAdvice: s.InvestmentAdvice,
		},
	}
}

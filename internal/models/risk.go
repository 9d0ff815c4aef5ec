package models

// Risk level labels
const (
	RiskLevelLow      = "Low Risk"
	RiskLevelModerate = "Moderate Risk"
	RiskLevelHigh     = "High Risk"
)

// Risk profile keys used by the recommendation tables
const (
	ProfileLowRisk      = "low_risk"
	ProfileModerateRisk = "moderate_risk"
	ProfileHighRisk     = "high_risk"
)

// RiskFactors holds the three integer risk factors, each in {1, 2, 3}.
type RiskFactors struct {
	Diversification       int `json:"diversification"`
	Volatility            int `json:"volatility"`
	CategoryConcentration int `json:"category_concentration"`
}

// RiskAssessment is the composite risk view of a portfolio.
// Score is always the arithmetic mean of the three factors.
type RiskAssessment struct {
	RiskLevel   string      `json:"risk_level"`
	RiskScore   float64     `json:"risk_score"`
	RiskFactors RiskFactors `json:"risk_factors"`
	Profile     string      `json:"profile"` // low_risk, moderate_risk, high_risk
}

// Recommendation is one entry of a canned ETF recommendation set.
type Recommendation struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	AllocationPct float64 `json:"allocation"`
}

// CategoryAnalysis describes category diversification and concentration.
type CategoryAnalysis struct {
	CategoryMetrics      []CategoryAllocation `json:"category_metrics"`
	DominantCategories   []string             `json:"dominant_categories"`
	MissingCategories    []string             `json:"missing_categories"`
	DiversificationLevel string               `json:"diversification_level"`
	ConcentrationLevel   string               `json:"concentration_level"`
	HHI                  float64              `json:"hhi"`
	NumCategories        int                  `json:"num_categories"`
}

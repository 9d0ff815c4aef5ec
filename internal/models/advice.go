package models

// Goal categories recognized by the advice mapper.
const (
	GoalRetirement       = "retirement"
	GoalHomePurchase     = "home_purchase"
	GoalAggressiveGrowth = "aggressive_growth"
)

// DefaultGoals are analyzed when the caller supplies none.
var DefaultGoals = []string{GoalRetirement, GoalHomePurchase, GoalAggressiveGrowth}

// AllocationModel is a recommended stocks/bonds/cash/other split.
type AllocationModel struct {
	Stocks float64 `json:"stocks"`
	Bonds  float64 `json:"bonds"`
	Cash   float64 `json:"cash"`
	Other  float64 `json:"other"`
}

// AdviceNarrative is the structured narrative produced by the text-generation
// capability. A fixed fallback is substituted when the output cannot be parsed.
type AdviceNarrative struct {
	Assessment      string          `json:"assessment"`
	Recommendations []string        `json:"recommendations"`
	Timeline        string          `json:"timeline"`
	AllocationModel AllocationModel `json:"allocation_model"`
	AdditionalNotes string          `json:"additional_notes"`
}

// InvestmentAdvice maps a user goal and current risk level to a target
// profile, a canned recommendation set and a narrative.
type InvestmentAdvice struct {
	Goal                   string           `json:"goal"`
	MatchedGoal            string           `json:"matched_goal_category"`
	CurrentRiskProfile     string           `json:"current_risk_profile"`
	TargetProfile          string           `json:"target_profile"`       // low_risk, moderate_risk, high_risk
	TargetRiskProfile      string           `json:"target_risk_profile"`  // display form, e.g. "Low Risk"
	Advice                 AdviceNarrative  `json:"advice"`
	DefaultRecommendations []Recommendation `json:"default_recommendations"`
}

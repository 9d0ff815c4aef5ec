package risk

import "github.com/bobmcallan/advisor/internal/models"

// stockCategories maps well-known tickers to their category. Unknown tickers
// fall back to "Other".
var stockCategories = map[string]string{
	// Technology
	"AAPL": "Technology", "MSFT": "Technology", "GOOGL": "Technology", "GOOG": "Technology",
	"META": "Technology", "AMZN": "Technology", "NVDA": "Technology", "TSLA": "Technology",
	"AMD": "Technology", "INTC": "Technology", "IBM": "Technology", "CSCO": "Technology",
	"ORCL": "Technology", "CRM": "Technology", "ADBE": "Technology",

	// Healthcare
	"JNJ": "Healthcare", "PFE": "Healthcare", "MRK": "Healthcare", "ABT": "Healthcare",
	"UNH": "Healthcare", "ABBV": "Healthcare", "BMY": "Healthcare", "TMO": "Healthcare",
	"DHR": "Healthcare", "AMGN": "Healthcare",

	// Finance
	"JPM": "Finance", "BAC": "Finance", "WFC": "Finance", "GS": "Finance", "MS": "Finance",
	"C": "Finance", "AXP": "Finance", "BLK": "Finance", "SCHW": "Finance",

	// Consumer
	"KO": "Consumer", "PEP": "Consumer", "PG": "Consumer", "WMT": "Consumer", "MCD": "Consumer",
	"SBUX": "Consumer", "NKE": "Consumer", "DIS": "Consumer", "HD": "Consumer", "COST": "Consumer",

	// Energy
	"XOM": "Energy", "CVX": "Energy", "COP": "Energy", "EOG": "Energy", "SLB": "Energy",
	"OXY": "Energy",

	// Telecoms
	"VZ": "Telecommunications", "T": "Telecommunications", "TMUS": "Telecommunications",

	// Real Estate
	"AMT": "Real Estate", "EQIX": "Real Estate", "PLD": "Real Estate", "CCI": "Real Estate",

	// Industrials
	"GE": "Industrial", "MMM": "Industrial", "HON": "Industrial", "CAT": "Industrial",
	"BA": "Industrial", "LMT": "Industrial", "RTX": "Industrial",

	// ETFs
	"SPY": "ETF", "QQQ": "ETF", "IWM": "ETF", "DIA": "ETF", "VTI": "ETF",
	"VOO": "ETF", "VEA": "ETF", "VWO": "ETF", "BND": "ETF", "AGG": "ETF",
	"VNQ": "ETF", "GLD": "ETF", "SLV": "ETF",
}

// CategoryFor returns the category for a ticker, "Other" when unknown.
func CategoryFor(ticker string) string {
	if cat, ok := stockCategories[ticker]; ok {
		return cat
	}
	return "Other"
}

// categoryRiskWeights estimate volatility risk per category when realized
// volatility is unavailable.
var categoryRiskWeights = map[string]float64{
	"Technology":         3,
	"Healthcare":         2,
	"Finance":            2.5,
	"Consumer":           1.5,
	"Energy":             3,
	"Telecommunications": 1.5,
	"Real Estate":        2,
	"Industrial":         2,
	"ETF":                1,
	"Other":              2.5,
}

// majorCategories drive missing-category detection.
var majorCategories = []string{
	"Technology", "Healthcare", "Finance", "Consumer", "Energy", "Industrial", "ETF",
}

// defaultRecommendations are the canned ETF sets per risk profile. Each set
// allocates exactly 100 percent.
var defaultRecommendations = map[string][]models.Recommendation{
	models.ProfileLowRisk: {
		{Ticker: "BND", Name: "Vanguard Total Bond Market ETF", AllocationPct: 40},
		{Ticker: "VTI", Name: "Vanguard Total Stock Market ETF", AllocationPct: 30},
		{Ticker: "VEA", Name: "Vanguard FTSE Developed Markets ETF", AllocationPct: 20},
		{Ticker: "VTIP", Name: "Vanguard Short-Term Inflation-Protected Securities ETF", AllocationPct: 10},
	},
	models.ProfileModerateRisk: {
		{Ticker: "VTI", Name: "Vanguard Total Stock Market ETF", AllocationPct: 45},
		{Ticker: "VEA", Name: "Vanguard FTSE Developed Markets ETF", AllocationPct: 25},
		{Ticker: "BND", Name: "Vanguard Total Bond Market ETF", AllocationPct: 20},
		{Ticker: "VWO", Name: "Vanguard FTSE Emerging Markets ETF", AllocationPct: 10},
	},
	models.ProfileHighRisk: {
		{Ticker: "VTI", Name: "Vanguard Total Stock Market ETF", AllocationPct: 50},
		{Ticker: "VWO", Name: "Vanguard FTSE Emerging Markets ETF", AllocationPct: 25},
		{Ticker: "VEA", Name: "Vanguard FTSE Developed Markets ETF", AllocationPct: 15},
		{Ticker: "ARKK", Name: "ARK Innovation ETF", AllocationPct: 10},
	},
}

// RecommendationsFor returns the canned recommendation set for a profile.
// The returned slice is a copy; callers may not mutate the table.
func RecommendationsFor(profile string) []models.Recommendation {
	recs, ok := defaultRecommendations[profile]
	if !ok {
		recs = defaultRecommendations[models.ProfileModerateRisk]
	}
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	return out
}

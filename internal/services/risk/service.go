// Package risk implements risk scoring and category analysis for portfolios.
package risk

import (
	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

const (
	// Composite score thresholds
	highRiskScore     = 2.3
	moderateRiskScore = 1.7

	// Concentration thresholds (max single-category allocation %)
	highConcentrationPct   = 60
	mediumConcentrationPct = 40

	// Realized annualized volatility thresholds (%)
	highVolatilityPct   = 25
	mediumVolatilityPct = 15

	// Category-weighted risk estimate thresholds. These look like the
	// volatility thresholds scaled down but are calibrated independently
	// for the 1-3 weight scale.
	highWeightedRisk   = 2.5
	mediumWeightedRisk = 1.8

	// HHI concentration tiers
	hhiHighlyConcentrated     = 3000
	hhiModeratelyConcentrated = 1800
)

// Service implements RiskService
type Service struct {
	logger *common.Logger
}

// NewService creates a new risk service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// AssessRisk derives the composite risk assessment and the canned
// recommendation set matching the resulting profile.
func (s *Service) AssessRisk(metrics *models.PortfolioMetrics) (*models.RiskAssessment, []models.Recommendation) {
	factors := models.RiskFactors{
		Diversification:       diversificationFactor(len(metrics.Assets)),
		Volatility:            s.volatilityFactor(metrics),
		CategoryConcentration: concentrationFactor(metrics.CategoryAllocation),
	}

	score := float64(factors.Diversification+factors.Volatility+factors.CategoryConcentration) / 3

	level := models.RiskLevelLow
	profile := models.ProfileLowRisk
	switch {
	case score > highRiskScore:
		level = models.RiskLevelHigh
		profile = models.ProfileHighRisk
	case score > moderateRiskScore:
		level = models.RiskLevelModerate
		profile = models.ProfileModerateRisk
	}

	assessment := &models.RiskAssessment{
		RiskLevel:   level,
		RiskScore:   score,
		RiskFactors: factors,
		Profile:     profile,
	}

	return assessment, RecommendationsFor(profile)
}

// diversificationFactor scores risk from the number of resolved assets.
func diversificationFactor(numAssets int) int {
	switch {
	case numAssets < 5:
		return 3
	case numAssets < 10:
		return 2
	default:
		return 1
	}
}

// volatilityFactor scores risk from realized annualized volatility when
// available, falling back to an allocation-weighted category risk estimate.
func (s *Service) volatilityFactor(metrics *models.PortfolioMetrics) int {
	if vol, ok := metrics.Returns["volatility"]; ok {
		switch {
		case vol > highVolatilityPct:
			return 3
		case vol > mediumVolatilityPct:
			return 2
		default:
			return 1
		}
	}

	weighted := 0.0
	totalAllocation := 0.0
	for _, ca := range metrics.CategoryAllocation {
		weight, ok := categoryRiskWeights[ca.Category]
		if !ok {
			weight = 2.5
		}
		weighted += ca.AllocationPct * weight
		totalAllocation += ca.AllocationPct
	}

	avg := 2.0
	if totalAllocation > 0 {
		avg = weighted / totalAllocation
	}

	switch {
	case avg > highWeightedRisk:
		return 3
	case avg > mediumWeightedRisk:
		return 2
	default:
		return 1
	}
}

// concentrationFactor scores risk from the maximum single-category
// allocation. Absence of any category defaults to the worst case.
func concentrationFactor(categories []models.CategoryAllocation) int {
	maxAlloc := 100.0
	if len(categories) > 0 {
		maxAlloc = categories[0].AllocationPct
		for _, ca := range categories[1:] {
			if ca.AllocationPct > maxAlloc {
				maxAlloc = ca.AllocationPct
			}
		}
	}

	switch {
	case maxAlloc > highConcentrationPct:
		return 3
	case maxAlloc > mediumConcentrationPct:
		return 2
	default:
		return 1
	}
}

// AnalyzeCategories derives diversification and concentration measures from
// the category allocation.
func (s *Service) AnalyzeCategories(metrics *models.PortfolioMetrics) *models.CategoryAnalysis {
	allocations := make(map[string]float64, len(metrics.CategoryAllocation))
	for _, ca := range metrics.CategoryAllocation {
		allocations[ca.Category] = ca.AllocationPct
	}

	dominant := make([]string, 0)
	for _, ca := range metrics.CategoryAllocation {
		if ca.AllocationPct > 20 {
			dominant = append(dominant, ca.Category)
		}
	}

	missing := make([]string, 0)
	for _, cat := range majorCategories {
		if alloc, ok := allocations[cat]; !ok || alloc < 5 {
			missing = append(missing, cat)
		}
	}

	numCategories := len(allocations)
	diversification := "Poorly Diversified"
	switch {
	case numCategories >= 6:
		diversification = "Highly Diversified"
	case numCategories >= 4:
		diversification = "Well Diversified"
	case numCategories >= 2:
		diversification = "Moderately Diversified"
	}

	hhi := 0.0
	for _, alloc := range allocations {
		share := alloc / 100
		hhi += share * share
	}
	hhi *= 10000

	concentration := "Not Concentrated"
	switch {
	case hhi > hhiHighlyConcentrated:
		concentration = "Highly Concentrated"
	case hhi > hhiModeratelyConcentrated:
		concentration = "Moderately Concentrated"
	}

	return &models.CategoryAnalysis{
		CategoryMetrics:      metrics.CategoryAllocation,
		DominantCategories:   dominant,
		MissingCategories:    missing,
		DiversificationLevel: diversification,
		ConcentrationLevel:   concentration,
		HHI:                  hhi,
		NumCategories:        numCategories,
	}
}

// Ensure Service implements RiskService
var _ interfaces.RiskService = (*Service)(nil)

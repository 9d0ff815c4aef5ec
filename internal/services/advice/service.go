// Package advice maps financial goals to target risk profiles and produces
// a narrative recommendation through the text-generation capability.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
	"github.com/bobmcallan/advisor/internal/services/risk"
)

// goalOrder fixes the keyword matching order; the first goal with a keyword
// hit wins.
var goalOrder = []string{models.GoalRetirement, models.GoalHomePurchase, models.GoalAggressiveGrowth}

var goalKeywords = map[string][]string{
	models.GoalRetirement:       {"retirement", "retire", "pension"},
	models.GoalHomePurchase:     {"home", "house", "property", "real estate", "mortgage"},
	models.GoalAggressiveGrowth: {"aggressive", "growth", "risky", "high return"},
}

// goalMappings selects the target profile from the matched goal and the
// current risk level.
var goalMappings = map[string]map[string]string{
	models.GoalRetirement: {
		models.RiskLevelHigh:     models.ProfileModerateRisk,
		models.RiskLevelModerate: models.ProfileModerateRisk,
		models.RiskLevelLow:      models.ProfileLowRisk,
	},
	models.GoalHomePurchase: {
		models.RiskLevelHigh:     models.ProfileLowRisk,
		models.RiskLevelModerate: models.ProfileLowRisk,
		models.RiskLevelLow:      models.ProfileLowRisk,
	},
	models.GoalAggressiveGrowth: {
		models.RiskLevelHigh:     models.ProfileHighRisk,
		models.RiskLevelModerate: models.ProfileHighRisk,
		models.RiskLevelLow:      models.ProfileModerateRisk,
	},
}

// Service implements AdviceService
type Service struct {
	textgen interfaces.TextGenClient
	logger  *common.Logger
}

// NewService creates a new advice service
func NewService(textgen interfaces.TextGenClient, logger *common.Logger) *Service {
	return &Service{textgen: textgen, logger: logger}
}

// Advise classifies the goal, derives the target profile from the current
// risk level and asks the text-generation capability for a structured
// narrative. Unparseable narratives are replaced with a fixed fallback; the
// fallback path never fails the call.
func (s *Service) Advise(ctx context.Context, metrics *models.PortfolioMetrics, assessment *models.RiskAssessment, goal string) (*models.InvestmentAdvice, error) {
	matched := MatchGoal(goal)
	target := targetProfile(matched, assessment.RiskLevel)

	narrative := s.generateNarrative(ctx, metrics, assessment, goal, target)

	return &models.InvestmentAdvice{
		Goal:                   goal,
		MatchedGoal:            matched,
		CurrentRiskProfile:     assessment.RiskLevel,
		TargetProfile:          target,
		TargetRiskProfile:      profileDisplay(target),
		Advice:                 narrative,
		DefaultRecommendations: risk.RecommendationsFor(target),
	}, nil
}

// MatchGoal classifies free-form goal text into a goal category, defaulting
// to retirement when nothing matches.
func MatchGoal(goal string) string {
	lowered := strings.ToLower(goal)
	for _, g := range goalOrder {
		for _, keyword := range goalKeywords[g] {
			if strings.Contains(lowered, keyword) {
				return g
			}
		}
	}
	return models.GoalRetirement
}

func targetProfile(matchedGoal, riskLevel string) string {
	if target, ok := goalMappings[matchedGoal][riskLevel]; ok {
		return target
	}
	return models.ProfileModerateRisk
}

// profileDisplay converts a profile key to its display form, e.g.
// "low_risk" to "Low Risk".
func profileDisplay(profile string) string {
	words := strings.Split(profile, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func (s *Service) generateNarrative(ctx context.Context, metrics *models.PortfolioMetrics, assessment *models.RiskAssessment, goal, target string) models.AdviceNarrative {
	prompt := buildPrompt(metrics, assessment, goal, target)

	text, err := s.textgen.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("goal", goal).Msg("Narrative generation failed, using fallback advice")
		return fallbackNarrative()
	}

	narrative, err := parseNarrative(text)
	if err != nil {
		s.logger.Warn().Err(err).Str("goal", goal).Msg("Narrative unparseable, using fallback advice")
		return fallbackNarrative()
	}
	return narrative
}

func buildPrompt(metrics *models.PortfolioMetrics, assessment *models.RiskAssessment, goal, target string) string {
	categories := make([]string, 0, len(metrics.CategoryAllocation))
	for _, c := range metrics.CategoryAllocation {
		categories = append(categories, fmt.Sprintf("%s (%.1f%%)", c.Category, c.AllocationPct))
	}

	var b strings.Builder
	b.WriteString("As a financial advisor, provide personalized investment advice based on the following information:\n\n")
	b.WriteString("Current Portfolio:\n")
	fmt.Fprintf(&b, "- Total Value: $%.2f\n", metrics.TotalValue)
	fmt.Fprintf(&b, "- Current Risk Profile: %s\n", assessment.RiskLevel)
	fmt.Fprintf(&b, "- Major Categories: %s\n", strings.Join(categories, ", "))
	fmt.Fprintf(&b, "- Number of Assets: %d\n\n", len(metrics.Assets))
	fmt.Fprintf(&b, "User's Goal: %s\n", goal)
	fmt.Fprintf(&b, "Target Risk Profile: %s\n\n", profileDisplay(target))
	b.WriteString("Provide the following advice:\n")
	b.WriteString("1. Overall assessment of the portfolio alignment with the goal\n")
	b.WriteString("2. 3-4 specific recommendations for portfolio adjustments (be specific about which types of assets to add or reduce)\n")
	b.WriteString("3. Timeline considerations\n")
	b.WriteString("4. A recommended allocation model (stocks/bonds/cash percentages)\n\n")
	b.WriteString("Format your response as a structured JSON with the following keys:\n")
	b.WriteString("- assessment (string)\n")
	b.WriteString("- recommendations (array of strings)\n")
	b.WriteString("- timeline (string)\n")
	b.WriteString("- allocation_model (object with keys for stocks, bonds, cash, and other percentages)\n")
	b.WriteString("- additional_notes (string)\n")
	return b.String()
}

// parseNarrative decodes the model output, tolerating markdown code fences
// around the JSON body.
func parseNarrative(text string) (models.AdviceNarrative, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var narrative models.AdviceNarrative
	if err := json.Unmarshal([]byte(cleaned), &narrative); err != nil {
		return models.AdviceNarrative{}, fmt.Errorf("decode advice narrative: %w", err)
	}
	return narrative, nil
}

// fallbackNarrative is the fixed payload substituted when the
// text-generation capability fails or returns something unparseable.
func fallbackNarrative() models.AdviceNarrative {
	return models.AdviceNarrative{
		Assessment: "Unable to analyze portfolio properly.",
		Recommendations: []string{
			"Consider consulting with a professional financial advisor.",
			"Review your portfolio allocation between stocks and bonds.",
			"Ensure your investments align with your time horizon.",
		},
		Timeline: "Your timeline will depend on your specific goals and risk tolerance.",
		AllocationModel: models.AllocationModel{
			Stocks: 60,
			Bonds:  30,
			Cash:   10,
			Other:  0,
		},
		AdditionalNotes: "This is general advice. Please consult a professional for personalized recommendations.",
	}
}

// Ensure Service implements AdviceService
var _ interfaces.AdviceService = (*Service)(nil)

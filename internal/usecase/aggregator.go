package usecase

import (
	"fmt"
	"math"

	"github.com/ecolens/backend/internal/domain"
)

// UnifiedWeights blend the environmental overall and the food health score
// into the unified score for combined mode. Tunable; must sum to 1.
type UnifiedWeights struct {
	Environment float64
	Health      float64
}

// DefaultUnifiedWeights mirrors the observed product defaults.
var DefaultUnifiedWeights = UnifiedWeights{Environment: 0.5, Health: 0.5}

// Completeness at or above this fraction counts as "rich" input for the
// confidence rule.
const richInputThreshold = 0.7

// AI sub-scores diverging from the heuristic baseline by more than this many
// points on average drop a high-confidence verdict to medium.
const agreementTolerance = 25.0

// Aggregate merges the scorer outputs and the enrichment signals into one
// immutable UnifiedAnalysisResult. Pure merge over already-computed inputs.
//
// env may be nil only when a caller explicitly suppressed environmental
// scoring; the default engine always supplies it, so food_only never occurs
// in practice.
func Aggregate(
	env *domain.EnvironmentalScores,
	food *domain.FoodScores,
	enriched *domain.EnrichedSignals,
	completeness float64,
	envWeights EnvWeights,
	weights UnifiedWeights,
) *domain.UnifiedAnalysisResult {
	mode := selectMode(env, food)

	// Enrichment may have overridden individual sub-scores; score off the
	// enriched copy and recompute its derived values (the weighted overall
	// and the food rating letter) so they stay consistent with the final
	// numbers.
	finalEnv := enriched.Environment
	finalEnv.Overall = clamp(finalEnv.Packaging*envWeights.Packaging +
		finalEnv.Carbon*envWeights.Carbon +
		finalEnv.Materials*envWeights.Materials)
	finalFood := enriched.Food
	if finalFood == nil {
		finalFood = food
	}
	if finalFood != nil {
		rated := *finalFood
		rated.OverallRating = GradeFor(int(rated.HealthScore + 0.5))
		finalFood = &rated
	}

	var unified int
	switch mode {
	case domain.ModeCombined:
		unified = roundScore(finalEnv.Overall*weights.Environment + finalFood.HealthScore*weights.Health)
	case domain.ModeFoodOnly:
		unified = roundScore(finalFood.HealthScore)
	default:
		unified = roundScore(finalEnv.Overall)
	}

	result := &domain.UnifiedAnalysisResult{
		UnifiedScore:          unified,
		SustainabilityGrade:   GradeFor(unified),
		ConfidenceLevel:       confidenceFor(enriched, env, completeness),
		AnalysisType:          mode,
		KeyInsights:           enriched.Insights,
		ActionRecommendations: enriched.Recommendations,
	}

	if mode != domain.ModeFoodOnly {
		result.EcoScore = domain.EcoScore{
			Overall: finalEnv.Overall,
			Breakdown: map[string]float64{
				"packaging": finalEnv.Packaging,
				"carbon":    finalEnv.Carbon,
				"materials": finalEnv.Materials,
			},
			Certifications: enriched.Certifications,
			ImpactSummary:  impactSummary(finalEnv),
		}
	}
	if mode != domain.ModeEnvironmentalOnly {
		result.FoodAnalysis = finalFood
	}

	return result
}

// selectMode derives the analysis mode solely from which scorers produced
// output, so mode is always consistent with the data that exists.
func selectMode(env *domain.EnvironmentalScores, food *domain.FoodScores) domain.AnalysisMode {
	switch {
	case env != nil && food != nil:
		return domain.ModeCombined
	case env == nil && food != nil:
		return domain.ModeFoodOnly
	default:
		return domain.ModeEnvironmentalOnly
	}
}

// GradeFor maps a 0-100 score to the A-E sustainability grade. Thresholds
// are inclusive lower bounds.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "E"
	}
}

// confidenceFor applies the two-factor confidence rule (enrichment success x
// input completeness), with one refinement: a high verdict is downgraded to
// medium when the AI sub-scores disagree with the heuristic baseline by more
// than agreementTolerance on average.
func confidenceFor(enriched *domain.EnrichedSignals, baselineEnv *domain.EnvironmentalScores, completeness float64) domain.ConfidenceLevel {
	rich := completeness >= richInputThreshold

	if enriched.AIEnriched {
		if rich {
			if baselineEnv != nil && scoreDivergence(*baselineEnv, enriched.Environment) > agreementTolerance {
				return domain.ConfidenceMedium
			}
			return domain.ConfidenceHigh
		}
		return domain.ConfidenceMedium
	}

	if rich {
		return domain.ConfidenceMedium
	}
	return domain.ConfidenceLow
}

// scoreDivergence is the mean absolute difference between baseline and
// enriched environmental sub-scores.
func scoreDivergence(baseline, enriched domain.EnvironmentalScores) float64 {
	return (math.Abs(baseline.Packaging-enriched.Packaging) +
		math.Abs(baseline.Carbon-enriched.Carbon) +
		math.Abs(baseline.Materials-enriched.Materials)) / 3.0
}

func impactSummary(env domain.EnvironmentalScores) string {
	switch {
	case env.Overall >= strongScoreThreshold:
		return fmt.Sprintf("Low environmental impact (eco score %.0f/100)", env.Overall)
	case env.Overall >= weakScoreThreshold:
		return fmt.Sprintf("Moderate environmental impact (eco score %.0f/100)", env.Overall)
	default:
		return fmt.Sprintf("High environmental impact (eco score %.0f/100)", env.Overall)
	}
}

// roundScore rounds half away from zero and clamps to [0,100].
func roundScore(v float64) int {
	return int(clamp(math.Round(v)))
}

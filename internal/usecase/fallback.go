package usecase

import (
	"fmt"

	"github.com/ecolens/backend/internal/domain"
)

// Sub-score thresholds driving the heuristic narrative templates.
const (
	weakScoreThreshold   = 50.0
	strongScoreThreshold = 75.0
)

// FallbackEnrich is the deterministic, offline substitute for the AI
// gateway. It reuses the baseline sub-scores unchanged and synthesizes
// insights and recommendations from fixed threshold templates. No I/O,
// bounded time; it exists so the engine can always produce a result.
func FallbackEnrich(facts *domain.ProductFacts, env domain.EnvironmentalScores, food *domain.FoodScores) *domain.EnrichedSignals {
	return &domain.EnrichedSignals{
		Environment:     env,
		Food:            food,
		Certifications:  RecognizedCertifications(facts.Certifications),
		Insights:        heuristicInsights(facts, env, food),
		Recommendations: heuristicRecommendations(facts, env, food),
		AIEnriched:      false,
	}
}

func heuristicInsights(facts *domain.ProductFacts, env domain.EnvironmentalScores, food *domain.FoodScores) []string {
	var insights []string

	if env.Overall >= strongScoreThreshold {
		insights = append(insights, fmt.Sprintf("%s scores well on overall environmental impact", facts.Name))
	} else if env.Overall < weakScoreThreshold {
		insights = append(insights, fmt.Sprintf("%s has a below-average environmental footprint", facts.Name))
	}

	if facts.Organic {
		insights = append(insights, "Organic production reduces synthetic pesticide use")
	}
	if facts.LocallySourced {
		insights = append(insights, "Local sourcing shortens the supply chain and cuts transport emissions")
	}
	if facts.CarbonNeutral {
		insights = append(insights, "Producer offsets its carbon emissions")
	}
	if recognized := RecognizedCertifications(facts.Certifications); len(recognized) > 0 {
		insights = append(insights, fmt.Sprintf("Carries %d recognized sustainability certification(s)", len(recognized)))
	}

	if food != nil {
		if food.Buckets.Sugar == domain.LevelHigh {
			insights = append(insights, "High sugar content per serving")
		}
		if food.Buckets.Sodium == domain.LevelHigh {
			insights = append(insights, "High sodium content per serving")
		}
		if flagged := FlaggedAdditives(facts.Ingredients); len(flagged) > 0 {
			insights = append(insights, fmt.Sprintf("Contains %d flagged additive(s)", len(flagged)))
		}
	}

	if len(insights) == 0 {
		insights = append(insights, "Limited product information available; scores use conservative defaults")
	}
	return insights
}

func heuristicRecommendations(facts *domain.ProductFacts, env domain.EnvironmentalScores, food *domain.FoodScores) []string {
	var recs []string

	for _, dim := range []struct {
		name  string
		score float64
	}{
		{"packaging", env.Packaging},
		{"carbon footprint", env.Carbon},
		{"materials", env.Materials},
	} {
		if dim.score < weakScoreThreshold {
			recs = append(recs, fmt.Sprintf("Consider alternatives with better %s", dim.name))
		}
	}

	if food != nil {
		if food.HealthScore < weakScoreThreshold {
			recs = append(recs, "Consider alternatives with a better nutritional profile")
		}
		if food.Buckets.Sugar == domain.LevelHigh {
			recs = append(recs, "Look for lower-sugar options in this category")
		}
		if food.Buckets.Sodium == domain.LevelHigh {
			recs = append(recs, "Look for lower-sodium options in this category")
		}
	}

	if len(facts.Certifications) == 0 {
		recs = append(recs, "Prefer products with recognized sustainability certifications")
	}
	if facts.Packaging == domain.UnknownPackaging {
		recs = append(recs, "Check packaging recyclability before disposal")
	}

	if len(recs) == 0 {
		recs = append(recs, "Keep choosing products with strong sustainability signals")
	}
	return recs
}

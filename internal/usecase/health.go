package usecase

import (
	"strings"

	"github.com/ecolens/backend/internal/domain"
)

// Nutrient bucket thresholds, per serving. A value at or below the low bound
// is "low", above the high bound is "high", otherwise "moderate". Fiber is
// inverted in scoring: high fiber is good.
const (
	sugarLowG    = 5.0
	sugarHighG   = 15.0
	sodiumLowMG  = 140.0
	sodiumHighMG = 600.0
	fiberLowG    = 2.0
	fiberHighG   = 5.0
	caloriesLow  = 150.0
	caloriesHigh = 400.0
)

// Health score penalty/bonus table applied to the base score.
const (
	healthBaseScore        = 70.0
	sugarHighPenalty       = 15.0
	sugarModeratePenalty   = 5.0
	sodiumHighPenalty      = 15.0
	sodiumModeratePenalty  = 5.0
	calorieHighPenalty     = 10.0
	calorieModeratePenalty = 3.0
	fiberHighBonus         = 10.0
	fiberModerateBonus     = 3.0
	fiberLowPenalty        = 5.0
	proteinBonus           = 5.0
	proteinBonusThresholdG = 10.0
)

// Sourcing sustainability score constants.
const (
	sourcingBaseScore      = 60.0
	goodIngredientBonus    = 8.0
	goodIngredientCap      = 16.0
	flaggedAdditivePenalty = 6.0
	flaggedAdditiveCap     = 24.0
	sourcingLocalBonus     = 6.0
	sourcingFairTradeBonus = 5.0
)

// goodIngredientTokens reward the sourcing score when present in the
// ingredient list.
var goodIngredientTokens = []string{"organic", "non-gmo", "non gmo", "whole grain", "fair trade"}

// flaggedAdditiveTokens is the fixed denylist of additive signals that
// penalize the sourcing score.
var flaggedAdditiveTokens = []string{
	"msg", "monosodium glutamate",
	"artificial color", "artificial colors", "artificial colour",
	"artificial flavor", "artificial flavors", "artificial flavour",
	"high fructose corn syrup", "hydrogenated",
	"preservative", "preservatives",
	"aspartame", "sodium benzoate",
}

// ScoreHealth computes the food-dimension scores. It returns nil — not a
// zero score — when the facts carry no nutrition data; that nil is the
// signal the aggregator uses to select the analysis mode.
func ScoreHealth(facts *domain.ProductFacts) *domain.FoodScores {
	if facts.Nutrition == nil {
		return nil
	}
	n := facts.Nutrition

	buckets := domain.NutrientBuckets{
		CalorieDensity: bucketOf(n.Calories, caloriesLow, caloriesHigh),
		Sugar:          bucketOf(n.SugarG, sugarLowG, sugarHighG),
		Sodium:         bucketOf(n.SodiumMG, sodiumLowMG, sodiumHighMG),
		Fiber:          bucketOf(n.FiberG, fiberLowG, fiberHighG),
	}

	health := healthScoreFromBuckets(buckets, n)
	sourcing := sourcingScore(facts)

	return &domain.FoodScores{
		HealthScore:         health,
		SustainabilityScore: sourcing,
		Buckets:             buckets,
		HealthBenefits:      healthBenefits(buckets, n),
		OverallRating:       GradeFor(int(health + 0.5)),
	}
}

// bucketOf classifies a per-serving value against its fixed thresholds.
func bucketOf(v, low, high float64) domain.NutrientLevel {
	switch {
	case v > high:
		return domain.LevelHigh
	case v < low:
		return domain.LevelLow
	default:
		return domain.LevelModerate
	}
}

// healthScoreFromBuckets combines the qualitative buckets into a 0-100 score
// via the fixed penalty/bonus table.
func healthScoreFromBuckets(b domain.NutrientBuckets, n *domain.NutritionFacts) float64 {
	score := healthBaseScore

	switch b.Sugar {
	case domain.LevelHigh:
		score -= sugarHighPenalty
	case domain.LevelModerate:
		score -= sugarModeratePenalty
	}

	switch b.Sodium {
	case domain.LevelHigh:
		score -= sodiumHighPenalty
	case domain.LevelModerate:
		score -= sodiumModeratePenalty
	}

	switch b.CalorieDensity {
	case domain.LevelHigh:
		score -= calorieHighPenalty
	case domain.LevelModerate:
		score -= calorieModeratePenalty
	}

	switch b.Fiber {
	case domain.LevelHigh:
		score += fiberHighBonus
	case domain.LevelModerate:
		score += fiberModerateBonus
	case domain.LevelLow:
		score -= fiberLowPenalty
	}

	if n.ProteinG >= proteinBonusThresholdG {
		score += proteinBonus
	}

	return clamp(score)
}

// sourcingScore rates how sustainably a food product is sourced, from
// ingredient-list signals plus the sourcing flags.
func sourcingScore(facts *domain.ProductFacts) float64 {
	score := sourcingBaseScore

	joined := strings.ToLower(strings.Join(facts.Ingredients, " | "))

	var bonus float64
	for _, token := range goodIngredientTokens {
		if strings.Contains(joined, token) {
			bonus += goodIngredientBonus
		}
	}
	if facts.Organic && bonus == 0 {
		bonus = goodIngredientBonus
	}
	if bonus > goodIngredientCap {
		bonus = goodIngredientCap
	}

	penalty := float64(len(FlaggedAdditives(facts.Ingredients))) * flaggedAdditivePenalty
	if penalty > flaggedAdditiveCap {
		penalty = flaggedAdditiveCap
	}

	score += bonus - penalty
	if facts.LocallySourced {
		score += sourcingLocalBonus
	}
	if facts.FairTrade {
		score += sourcingFairTradeBonus
	}

	return clamp(score)
}

// FlaggedAdditives returns the denylist tokens found in the ingredient list,
// deduplicated, in denylist order.
func FlaggedAdditives(ingredients []string) []string {
	joined := strings.ToLower(strings.Join(ingredients, " | "))
	var found []string
	seen := make(map[string]bool)
	for _, token := range flaggedAdditiveTokens {
		if strings.Contains(joined, token) && !seen[token] {
			// "artificial colors" also contains "artificial color"; count
			// the plural family once.
			family := strings.TrimSuffix(token, "s")
			if seen[family] {
				continue
			}
			seen[token] = true
			seen[family] = true
			found = append(found, token)
		}
	}
	return found
}

// healthBenefits derives the qualitative benefit list shown to users. Empty
// when nothing stands out.
func healthBenefits(b domain.NutrientBuckets, n *domain.NutritionFacts) []string {
	var benefits []string
	if b.Fiber == domain.LevelHigh {
		benefits = append(benefits, "Good source of fiber")
	}
	if n.ProteinG >= proteinBonusThresholdG {
		benefits = append(benefits, "High in protein")
	}
	if b.Sugar == domain.LevelLow {
		benefits = append(benefits, "Low in sugar")
	}
	if b.Sodium == domain.LevelLow {
		benefits = append(benefits, "Low in sodium")
	}
	return benefits
}

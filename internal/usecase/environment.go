package usecase

import (
	"strings"

	"github.com/ecolens/backend/internal/domain"
)

// EnvWeights are the relative weights of the environmental sub-scores in the
// overall eco score. They are a tunable table, not a law; config may override
// them as long as they sum to 1.
type EnvWeights struct {
	Packaging float64
	Carbon    float64
	Materials float64
}

// DefaultEnvWeights mirrors the observed product defaults.
var DefaultEnvWeights = EnvWeights{Packaging: 0.3, Carbon: 0.4, Materials: 0.3}

// categoryBaselines are the starting sub-scores before signal adjustments.
// A product about which nothing is known lands on its category baseline.
var categoryBaselines = map[domain.Category]domain.EnvironmentalScores{
	domain.CategoryFood:         {Packaging: 65, Carbon: 60, Materials: 65},
	domain.CategoryElectronics:  {Packaging: 50, Carbon: 45, Materials: 50},
	domain.CategoryPersonalCare: {Packaging: 55, Carbon: 55, Materials: 55},
	domain.CategoryGeneral:      {Packaging: 60, Carbon: 55, Materials: 60},
}

// Environmental adjustment constants.
const (
	organicMaterialsBonus  = 8.0
	certificationBonus     = 5.0
	certificationBonusCap  = 15.0
	badPackagingPenalty    = 10.0
	badPackagingPenaltyCap = 20.0
	goodPackagingBonus     = 6.0
	goodPackagingBonusCap  = 12.0
	carbonNeutralBonus     = 10.0
	locallySourcedBonus    = 8.0
	shippingTierPenalty    = 5.0
)

// certificationRegistry is the fixed set of recognized certification strings,
// keyed lowercase.
var certificationRegistry = map[string]bool{
	"organic":             true,
	"usda organic":        true,
	"non-gmo":             true,
	"non gmo":             true,
	"fair trade":          true,
	"fairtrade":           true,
	"rainforest alliance": true,
	"energy star":         true,
	"fsc":                 true,
	"fsc certified":       true,
	"b corp":              true,
	"cradle to cradle":    true,
	"carbon neutral":      true,
	"leaping bunny":       true,
}

// nonRecyclablePackagingKeywords penalize the packaging sub-score on match.
var nonRecyclablePackagingKeywords = []string{
	"plastic", "styrofoam", "polystyrene", "single-use", "single use",
	"non-recyclable", "laminate", "blister",
}

// recyclablePackagingKeywords reward the packaging sub-score on match.
var recyclablePackagingKeywords = []string{
	"glass", "aluminum", "aluminium", "cardboard", "paper", "recyclable",
	"compostable", "biodegradable", "recycled",
}

// shippingTiers is a coarse origin-distance heuristic: tier 0 costs nothing,
// each higher tier subtracts shippingTierPenalty from the carbon sub-score.
// Unlisted countries default to tier 1; "unspecified" origin stays at tier 1
// as a conservative default.
var shippingTiers = map[string]int{
	"local":          0,
	"usa":            0,
	"united states":  0,
	"us":             0,
	"canada":         1,
	"mexico":         1,
	"uk":             2,
	"united kingdom": 2,
	"germany":        2,
	"france":         2,
	"spain":          2,
	"italy":          2,
	"brazil":         2,
	"peru":           2,
	"china":          3,
	"india":          3,
	"vietnam":        3,
	"thailand":       3,
	"indonesia":      3,
	"australia":      3,
	"new zealand":    3,
}

const defaultShippingTier = 1

// ScoreEnvironment computes packaging, carbon, and materials sub-scores from
// a category baseline plus additive bonuses/penalties, then the weighted
// overall eco score. Every intermediate value is clamped to [0,100] before
// weighting so adjustments cannot compound out of range.
func ScoreEnvironment(facts *domain.ProductFacts, weights EnvWeights) domain.EnvironmentalScores {
	base, ok := categoryBaselines[facts.Category]
	if !ok {
		base = categoryBaselines[domain.CategoryGeneral]
	}

	packaging := base.Packaging + packagingAdjustment(facts.Packaging)
	carbon := base.Carbon + carbonAdjustment(facts)
	materials := base.Materials + materialsAdjustment(facts)

	packaging = clamp(packaging)
	carbon = clamp(carbon)
	materials = clamp(materials)

	overall := clamp(packaging*weights.Packaging + carbon*weights.Carbon + materials*weights.Materials)

	return domain.EnvironmentalScores{
		Packaging: packaging,
		Carbon:    carbon,
		Materials: materials,
		Overall:   overall,
	}
}

func packagingAdjustment(packaging string) float64 {
	desc := strings.ToLower(packaging)
	if desc == domain.UnknownPackaging {
		return 0
	}

	var penalty, bonus float64
	for _, kw := range nonRecyclablePackagingKeywords {
		if strings.Contains(desc, kw) {
			penalty += badPackagingPenalty
		}
	}
	for _, kw := range recyclablePackagingKeywords {
		if strings.Contains(desc, kw) {
			bonus += goodPackagingBonus
		}
	}
	if penalty > badPackagingPenaltyCap {
		penalty = badPackagingPenaltyCap
	}
	if bonus > goodPackagingBonusCap {
		bonus = goodPackagingBonusCap
	}
	return bonus - penalty
}

func carbonAdjustment(facts *domain.ProductFacts) float64 {
	adj := 0.0
	if facts.CarbonNeutral {
		adj += carbonNeutralBonus
	}
	if facts.LocallySourced {
		adj += locallySourcedBonus
	}
	adj -= float64(shippingTier(facts)) * shippingTierPenalty
	return adj
}

// shippingTier infers a shipping distance tier from the origin country.
// Locally-sourced products ship tier 0 regardless of stated origin.
func shippingTier(facts *domain.ProductFacts) int {
	if facts.LocallySourced {
		return 0
	}
	origin := strings.ToLower(strings.TrimSpace(facts.OriginCountry))
	if tier, ok := shippingTiers[origin]; ok {
		return tier
	}
	return defaultShippingTier
}

func materialsAdjustment(facts *domain.ProductFacts) float64 {
	adj := 0.0
	if facts.Organic {
		adj += organicMaterialsBonus
	}
	adj += RecognizedCertificationBonus(facts.Certifications)
	return adj
}

// RecognizedCertificationBonus sums the per-certification bonus for strings
// found in the fixed registry, capped.
func RecognizedCertificationBonus(certifications []string) float64 {
	bonus := 0.0
	for _, cert := range certifications {
		if certificationRegistry[strings.ToLower(strings.TrimSpace(cert))] {
			bonus += certificationBonus
		}
	}
	if bonus > certificationBonusCap {
		bonus = certificationBonusCap
	}
	return bonus
}

// RecognizedCertifications filters the input down to registry matches,
// preserving the caller's casing and order.
func RecognizedCertifications(certifications []string) []string {
	var matched []string
	for _, cert := range certifications {
		if certificationRegistry[strings.ToLower(strings.TrimSpace(cert))] {
			matched = append(matched, cert)
		}
	}
	return matched
}

// clamp bounds a score to [0,100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

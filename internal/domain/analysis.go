package domain

// AnalysisMode identifies which scorers actually produced output for a
// result. It is derived from the data, never from caller intent.
type AnalysisMode string

const (
	ModeEnvironmentalOnly AnalysisMode = "environmental_only"
	ModeFoodOnly          AnalysisMode = "food_only"
	ModeCombined          AnalysisMode = "combined"
)

// ConfidenceLevel is a qualitative trust indicator reflecting enrichment
// success and input completeness.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// EnvironmentalScores holds the environmental sub-scores and their weighted
// overall. Every value is clamped to [0,100].
type EnvironmentalScores struct {
	Packaging float64 `json:"packaging"`
	Carbon    float64 `json:"carbon"`
	Materials float64 `json:"materials"`
	Overall   float64 `json:"overall"`
}

// NutrientLevel is a qualitative bucket for a single nutrient.
type NutrientLevel string

const (
	LevelLow      NutrientLevel = "low"
	LevelModerate NutrientLevel = "moderate"
	LevelHigh     NutrientLevel = "high"
)

// NutrientBuckets are the qualitative per-nutrient classifications that feed
// the health score.
type NutrientBuckets struct {
	CalorieDensity NutrientLevel `json:"calorieDensity"`
	Sugar          NutrientLevel `json:"sugar"`
	Sodium         NutrientLevel `json:"sodium"`
	Fiber          NutrientLevel `json:"fiber"`
}

// FoodScores holds the food-dimension output: a nutrition-derived health
// score and a sourcing sustainability score, both in [0,100].
type FoodScores struct {
	HealthScore         float64         `json:"healthScore"`
	SustainabilityScore float64         `json:"sustainabilityScore"`
	Buckets             NutrientBuckets `json:"nutritionalBuckets"`
	HealthBenefits      []string        `json:"healthBenefits"`
	OverallRating       string          `json:"overallRating"`
}

// EnrichedSignals is the output of the enrichment step, whether it came from
// the AI gateway or the deterministic fallback. Scores are the baseline
// heuristic values with any valid AI-provided fields merged over them.
type EnrichedSignals struct {
	Environment     EnvironmentalScores `json:"environment"`
	Food            *FoodScores         `json:"food,omitempty"`
	Certifications  []string            `json:"certifications"`
	Insights        []string            `json:"insights"`
	Recommendations []string            `json:"recommendations"`

	// AIEnriched is true only when the AI gateway returned at least one
	// usable field. The aggregator uses it to set the confidence level.
	AIEnriched bool `json:"aiEnriched"`
}

// EcoScore is the environmental portion of the unified result as shown to
// callers: the breakdown plus certifications and an impact summary.
type EcoScore struct {
	Overall        float64            `json:"overall"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Certifications []string           `json:"certifications"`
	ImpactSummary  string             `json:"impactSummary"`
}

// UnifiedAnalysisResult is the engine's single output value. It is
// constructed once per analysis request and never mutated; callers may cache
// it by a fingerprint of the normalized ProductFacts.
type UnifiedAnalysisResult struct {
	UnifiedScore          int             `json:"unified_score"`
	SustainabilityGrade   string          `json:"sustainability_grade"`
	ConfidenceLevel       ConfidenceLevel `json:"confidence_level"`
	AnalysisType          AnalysisMode    `json:"analysis_type"`
	EcoScore              EcoScore        `json:"eco_score"`
	FoodAnalysis          *FoodScores     `json:"food_analysis,omitempty"`
	KeyInsights           []string        `json:"key_insights"`
	ActionRecommendations []string        `json:"action_recommendations"`
}

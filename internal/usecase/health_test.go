package usecase

import (
	"testing"

	"github.com/ecolens/backend/internal/domain"
)

func foodFacts(n *domain.NutritionFacts) *domain.ProductFacts {
	return &domain.ProductFacts{
		Name:          "Test Food",
		Category:      domain.CategoryFood,
		Packaging:     domain.UnknownPackaging,
		OriginCountry: domain.UnknownOrigin,
		Nutrition:     n,
	}
}

func TestScoreHealth(t *testing.T) {
	t.Run("returns nil, not zero, without nutrition data", func(t *testing.T) {
		if scores := ScoreHealth(foodFacts(nil)); scores != nil {
			t.Errorf("ScoreHealth = %+v, want nil", scores)
		}
	})

	t.Run("buckets follow the fixed thresholds", func(t *testing.T) {
		tests := []struct {
			name     string
			n        domain.NutritionFacts
			check    func(domain.NutrientBuckets) domain.NutrientLevel
			expected domain.NutrientLevel
		}{
			{"sodium above 600mg is high", domain.NutritionFacts{SodiumMG: 601}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.Sodium }, domain.LevelHigh},
			{"sodium at 600mg is moderate", domain.NutritionFacts{SodiumMG: 600}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.Sodium }, domain.LevelModerate},
			{"sodium below 140mg is low", domain.NutritionFacts{SodiumMG: 139}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.Sodium }, domain.LevelLow},
			{"sugar above 15g is high", domain.NutritionFacts{SugarG: 16}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.Sugar }, domain.LevelHigh},
			{"sugar below 5g is low", domain.NutritionFacts{SugarG: 4}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.Sugar }, domain.LevelLow},
			{"fiber above 5g is high", domain.NutritionFacts{FiberG: 6}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.Fiber }, domain.LevelHigh},
			{"calories above 400 is high", domain.NutritionFacts{Calories: 450}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.CalorieDensity }, domain.LevelHigh},
			{"calories below 150 is low", domain.NutritionFacts{Calories: 120}, func(b domain.NutrientBuckets) domain.NutrientLevel { return b.CalorieDensity }, domain.LevelLow},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				n := tt.n
				scores := ScoreHealth(foodFacts(&n))
				if scores == nil {
					t.Fatal("ScoreHealth = nil, want scores")
				}
				if got := tt.check(scores.Buckets); got != tt.expected {
					t.Errorf("bucket = %q, want %q", got, tt.expected)
				}
			})
		}
	})

	t.Run("wholesome profile scores well", func(t *testing.T) {
		scores := ScoreHealth(foodFacts(&domain.NutritionFacts{
			Calories: 180,
			ProteinG: 12,
			FiberG:   6,
			SugarG:   4,
			SodiumMG: 120,
		}))
		// 70 base - 3 moderate calories + 10 high fiber + 5 protein = 82.
		if scores.HealthScore != 82 {
			t.Errorf("HealthScore = %v, want 82", scores.HealthScore)
		}
		if scores.OverallRating != "B" {
			t.Errorf("OverallRating = %q, want B", scores.OverallRating)
		}
		wantBenefits := []string{"Good source of fiber", "High in protein", "Low in sugar", "Low in sodium"}
		if len(scores.HealthBenefits) != len(wantBenefits) {
			t.Fatalf("HealthBenefits = %v, want %v", scores.HealthBenefits, wantBenefits)
		}
		for i, b := range wantBenefits {
			if scores.HealthBenefits[i] != b {
				t.Errorf("HealthBenefits[%d] = %q, want %q", i, scores.HealthBenefits[i], b)
			}
		}
	})

	t.Run("ultra-processed profile scores poorly with empty benefits", func(t *testing.T) {
		facts := foodFacts(&domain.NutritionFacts{
			Calories: 540,
			ProteinG: 6,
			FiberG:   1,
			SugarG:   6,
			SodiumMG: 800,
		})
		facts.Ingredients = []string{"potatoes", "vegetable oil", "msg", "artificial colors", "preservatives"}

		scores := ScoreHealth(facts)
		// 70 - 10 calories - 15 sodium - 5 low fiber - 5 moderate sugar = 35.
		if scores.HealthScore != 35 {
			t.Errorf("HealthScore = %v, want 35", scores.HealthScore)
		}
		if len(scores.HealthBenefits) != 0 {
			t.Errorf("HealthBenefits = %v, want empty", scores.HealthBenefits)
		}
		// Denylist: msg + artificial color family + preservative family = 3
		// matches, -6 each, from the 60 baseline.
		if scores.SustainabilityScore != 42 {
			t.Errorf("SustainabilityScore = %v, want 42", scores.SustainabilityScore)
		}
	})

	t.Run("organic ingredients and sourcing flags raise the sourcing score", func(t *testing.T) {
		facts := foodFacts(&domain.NutritionFacts{Calories: 180})
		facts.Ingredients = []string{"organic quinoa", "black beans", "olive oil"}
		facts.Organic = true
		facts.LocallySourced = true

		scores := ScoreHealth(facts)
		// 60 base + 8 organic token + 6 local = 74.
		if scores.SustainabilityScore != 74 {
			t.Errorf("SustainabilityScore = %v, want 74", scores.SustainabilityScore)
		}
	})

	t.Run("denylist penalty is capped", func(t *testing.T) {
		facts := foodFacts(&domain.NutritionFacts{Calories: 180})
		facts.Ingredients = []string{
			"msg", "artificial color", "artificial flavour", "high fructose corn syrup",
			"hydrogenated oil", "preservatives", "aspartame", "sodium benzoate",
		}
		scores := ScoreHealth(facts)
		// 8 matches would be -48; cap holds it at -24 below the 60 baseline.
		if scores.SustainabilityScore != 36 {
			t.Errorf("SustainabilityScore = %v, want 36", scores.SustainabilityScore)
		}
	})
}

func TestFlaggedAdditives(t *testing.T) {
	t.Run("counts plural and singular forms once", func(t *testing.T) {
		found := FlaggedAdditives([]string{"artificial colors", "preservatives"})
		if len(found) != 2 {
			t.Errorf("FlaggedAdditives = %v, want 2 family matches", found)
		}
	})

	t.Run("clean ingredient list matches nothing", func(t *testing.T) {
		found := FlaggedAdditives([]string{"water", "oats", "sea salt"})
		if len(found) != 0 {
			t.Errorf("FlaggedAdditives = %v, want none", found)
		}
	})
}

package usecase

import (
	"errors"
	"testing"

	"github.com/ecolens/backend/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Run("fails only when product name is missing", func(t *testing.T) {
		_, err := Normalize(map[string]any{"brand": "Acme"})
		if !errors.Is(err, domain.ErrMissingProductName) {
			t.Errorf("error = %v, want ErrMissingProductName", err)
		}

		_, err = Normalize(map[string]any{"name": "   "})
		if !errors.Is(err, domain.ErrMissingProductName) {
			t.Errorf("error = %v, want ErrMissingProductName for blank name", err)
		}
	})

	t.Run("applies documented defaults for absent fields", func(t *testing.T) {
		facts, err := Normalize(map[string]any{"name": "Mystery Item"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if facts.Packaging != domain.UnknownPackaging {
			t.Errorf("Packaging = %q, want %q", facts.Packaging, domain.UnknownPackaging)
		}
		if facts.OriginCountry != domain.UnknownOrigin {
			t.Errorf("OriginCountry = %q, want %q", facts.OriginCountry, domain.UnknownOrigin)
		}
		if facts.Category != domain.CategoryGeneral {
			t.Errorf("Category = %q, want general", facts.Category)
		}
		if facts.Nutrition != nil {
			t.Error("Nutrition should be nil when no nutrition fields are present")
		}
	})

	t.Run("resolves field aliases regardless of casing", func(t *testing.T) {
		a, err := Normalize(map[string]any{
			"productName":   "Oat Milk",
			"originCountry": "Canada",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Normalize(map[string]any{
			"product_name":   "Oat Milk",
			"origin_country": "Canada",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Name != b.Name || a.OriginCountry != b.OriginCountry {
			t.Errorf("aliased payloads normalized differently: %+v vs %+v", a, b)
		}
		if a.OriginCountry != "Canada" {
			t.Errorf("OriginCountry = %q, want Canada", a.OriginCountry)
		}
	})

	t.Run("maps category synonyms to the enum", func(t *testing.T) {
		tests := []struct {
			raw  string
			want domain.Category
		}{
			{"Food", domain.CategoryFood},
			{"snacks", domain.CategoryFood},
			{"Electronics", domain.CategoryElectronics},
			{"personal care", domain.CategoryPersonalCare},
			{"furniture", domain.CategoryGeneral},
			{"", domain.CategoryGeneral},
		}
		for _, tt := range tests {
			facts, err := Normalize(map[string]any{"name": "x", "category": tt.raw})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if facts.Category != tt.want {
				t.Errorf("category %q = %q, want %q", tt.raw, facts.Category, tt.want)
			}
		}
	})

	t.Run("accepts ingredients as array or comma-separated string", func(t *testing.T) {
		fromList, _ := Normalize(map[string]any{
			"name":        "Granola",
			"ingredients": []any{"oats", "honey", " almonds "},
		})
		fromString, _ := Normalize(map[string]any{
			"name":        "Granola",
			"ingredients": "oats, honey, almonds",
		})
		if len(fromList.Ingredients) != 3 || len(fromString.Ingredients) != 3 {
			t.Fatalf("ingredient counts = %d / %d, want 3 / 3",
				len(fromList.Ingredients), len(fromString.Ingredients))
		}
		if fromList.Ingredients[2] != "almonds" {
			t.Errorf("Ingredients[2] = %q, want trimmed 'almonds'", fromList.Ingredients[2])
		}
	})

	t.Run("parses nested nutrition object", func(t *testing.T) {
		facts, err := Normalize(map[string]any{
			"name": "Yogurt",
			"nutrition": map[string]any{
				"calories":  float64(120),
				"protein_g": float64(9),
				"sugar":     "11.5",
				"sodium_mg": float64(85),
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if facts.Nutrition == nil {
			t.Fatal("Nutrition = nil, want parsed facts")
		}
		if facts.Nutrition.Calories != 120 {
			t.Errorf("Calories = %v, want 120", facts.Nutrition.Calories)
		}
		if facts.Nutrition.ProteinG != 9 {
			t.Errorf("ProteinG = %v, want 9", facts.Nutrition.ProteinG)
		}
		if facts.Nutrition.SugarG != 11.5 {
			t.Errorf("SugarG = %v, want 11.5 from numeric string", facts.Nutrition.SugarG)
		}
		if facts.Nutrition.SodiumMG != 85 {
			t.Errorf("SodiumMG = %v, want 85", facts.Nutrition.SodiumMG)
		}
	})

	t.Run("converts gram-denominated sodium to milligrams", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":      "Soup",
			"nutrition": map[string]any{"sodium": 0.8},
		})
		if facts.Nutrition == nil || facts.Nutrition.SodiumMG != 800 {
			t.Errorf("Nutrition = %+v, want SodiumMG 800", facts.Nutrition)
		}
	})

	t.Run("converts salt mass to its sodium content", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":      "Crackers",
			"nutrition": map[string]any{"salt": 1.0},
		})
		if facts.Nutrition == nil || facts.Nutrition.SodiumMG != 400 {
			t.Errorf("Nutrition = %+v, want SodiumMG 400 for 1g of salt", facts.Nutrition)
		}
	})

	t.Run("sodium keys take precedence over salt", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":      "Broth",
			"nutrition": map[string]any{"sodium_mg": 250.0, "salt": 2.0},
		})
		if facts.Nutrition == nil || facts.Nutrition.SodiumMG != 250 {
			t.Errorf("Nutrition = %+v, want SodiumMG 250 from the explicit key", facts.Nutrition)
		}
	})

	t.Run("drops implausible nutrition values", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":      "Broken Data",
			"nutrition": map[string]any{"calories": float64(999999)},
		})
		if facts.Nutrition != nil {
			t.Errorf("Nutrition = %+v, want nil when the only value is implausible", facts.Nutrition)
		}
	})

	t.Run("parses boolean flags from bools and strings", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":            "Coffee",
			"organic":         true,
			"fair_trade":      "true",
			"locally_sourced": false,
			"carbonNeutral":   "yes",
		})
		if !facts.Organic {
			t.Error("Organic = false, want true")
		}
		if !facts.FairTrade {
			t.Error("FairTrade = false, want true from string")
		}
		if facts.LocallySourced {
			t.Error("LocallySourced = true, want false")
		}
		if facts.CarbonNeutral {
			t.Error("CarbonNeutral = true, want false for unparseable string")
		}
	})
}

func TestCompleteness(t *testing.T) {
	t.Run("defaults-only facts score zero", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{"name": "Bare"})
		if c := Completeness(facts); c != 0 {
			t.Errorf("Completeness = %v, want 0", c)
		}
	})

	t.Run("fully populated facts score one", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":           "Full",
			"brand":          "Acme",
			"ingredients":    []any{"water"},
			"certifications": []any{"organic"},
			"packaging":      "glass jar",
			"origin_country": "Canada",
			"nutrition":      map[string]any{"calories": float64(100)},
		})
		if c := Completeness(facts); c != 1 {
			t.Errorf("Completeness = %v, want 1", c)
		}
	})

	t.Run("partial facts score the present fraction", func(t *testing.T) {
		facts, _ := Normalize(map[string]any{
			"name":      "Partial",
			"brand":     "Acme",
			"packaging": "cardboard box",
			"origin":    "usa",
		})
		if c := Completeness(facts); c != 0.5 {
			t.Errorf("Completeness = %v, want 0.5", c)
		}
	})
}

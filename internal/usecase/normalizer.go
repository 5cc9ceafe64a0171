package usecase

import (
	"strconv"
	"strings"

	"github.com/ecolens/backend/internal/domain"
)

// Field alias tables. Upstream screens and APIs send loosely-typed payloads
// with arbitrary casing/aliasing (originCountry vs origin_country); resolving
// them in one place keeps the scorers working only with ProductFacts.
var (
	nameAliases           = []string{"name", "product_name", "productname", "title"}
	brandAliases          = []string{"brand", "brand_name", "brandname", "manufacturer"}
	categoryAliases       = []string{"category", "product_category", "productcategory", "type"}
	ingredientsAliases    = []string{"ingredients", "ingredient_list", "ingredientlist"}
	certificationAliases  = []string{"certifications", "certification", "certs", "labels"}
	packagingAliases      = []string{"packaging", "packaging_description", "packagingdescription", "package"}
	originAliases         = []string{"origin_country", "origincountry", "origin", "country", "country_of_origin", "countryoforigin"}
	nutritionAliases      = []string{"nutrition", "nutrition_facts", "nutritionfacts", "nutrients"}
	organicAliases        = []string{"organic", "is_organic", "isorganic"}
	fairTradeAliases      = []string{"fair_trade", "fairtrade", "is_fair_trade"}
	locallySourcedAliases = []string{"locally_sourced", "locallysourced", "local", "is_local"}
	carbonNeutralAliases  = []string{"carbon_neutral", "carbonneutral", "is_carbon_neutral"}
)

// Nutrition sub-field aliases. Sodium is normalized to milligrams: sodium_mg
// is taken as-is, gram-denominated sodium keys are multiplied by 1000, and
// salt keys are converted by sodium mass fraction.
var (
	caloriesAliases    = []string{"calories", "calories_per_serving", "energy", "kcal"}
	proteinAliases     = []string{"protein", "protein_g", "proteing", "proteins"}
	carbsAliases       = []string{"carbs", "carbs_g", "carbohydrates", "carbohydrates_g"}
	fatAliases         = []string{"fat", "fat_g", "total_fat", "totalfat"}
	fiberAliases       = []string{"fiber", "fiber_g", "fibre", "dietary_fiber"}
	sugarAliases       = []string{"sugar", "sugar_g", "sugars", "sugars_g"}
	sodiumMGAliases    = []string{"sodium_mg", "sodiummg"}
	sodiumGAliases     = []string{"sodium", "sodium_g"}
	saltGAliases       = []string{"salt", "salt_g"}
	servingSizeAliases = []string{"serving_size", "servingsize", "serving"}
)

// Sodium makes up ~40% of table salt by mass, so one gram of salt carries
// about 400mg of sodium.
const sodiumMGPerGramSalt = 400.0

// Plausible per-serving ranges; values outside are treated as absent rather
// than poisoning the score.
const (
	maxCaloriesPerServing = 2000
	maxGramsPerServing    = 500
	maxSodiumMGPerServing = 10000
)

// Normalize validates and defaults a raw product payload into a canonical
// ProductFacts record. It fails only with ErrMissingProductName; every other
// field has a documented default. Pure function, no side effects.
func Normalize(raw map[string]any) (*domain.ProductFacts, error) {
	fields := lowerKeys(raw)

	name := strings.TrimSpace(lookupString(fields, nameAliases))
	if name == "" {
		return nil, domain.ErrMissingProductName
	}

	packaging := strings.TrimSpace(lookupString(fields, packagingAliases))
	if packaging == "" {
		packaging = domain.UnknownPackaging
	}

	origin := strings.TrimSpace(lookupString(fields, originAliases))
	if origin == "" {
		origin = domain.UnknownOrigin
	}

	return &domain.ProductFacts{
		Name:           name,
		Brand:          strings.TrimSpace(lookupString(fields, brandAliases)),
		Category:       normalizeCategory(lookupString(fields, categoryAliases)),
		Ingredients:    lookupStringList(fields, ingredientsAliases),
		Certifications: lookupStringList(fields, certificationAliases),
		Packaging:      packaging,
		OriginCountry:  origin,
		Nutrition:      normalizeNutrition(fields),
		Organic:        lookupBool(fields, organicAliases),
		FairTrade:      lookupBool(fields, fairTradeAliases),
		LocallySourced: lookupBool(fields, locallySourcedAliases),
		CarbonNeutral:  lookupBool(fields, carbonNeutralAliases),
	}, nil
}

// Completeness returns the fraction of optional ProductFacts fields that
// carry real (non-default) values. Consumed by the aggregator's confidence
// rule.
func Completeness(facts *domain.ProductFacts) float64 {
	present := 0
	if facts.Brand != "" {
		present++
	}
	if len(facts.Ingredients) > 0 {
		present++
	}
	if len(facts.Certifications) > 0 {
		present++
	}
	if facts.Packaging != domain.UnknownPackaging {
		present++
	}
	if facts.OriginCountry != domain.UnknownOrigin {
		present++
	}
	if facts.Nutrition != nil {
		present++
	}
	return float64(present) / 6.0
}

// normalizeCategory maps free-text category strings to the enum. Unknown or
// missing categories default to general.
func normalizeCategory(s string) domain.Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "food", "beverage", "beverages", "grocery", "snack", "snacks":
		return domain.CategoryFood
	case "electronics", "electronic", "tech":
		return domain.CategoryElectronics
	case "personal-care", "personal care", "personal_care", "cosmetics", "hygiene":
		return domain.CategoryPersonalCare
	default:
		return domain.CategoryGeneral
	}
}

// normalizeNutrition builds NutritionFacts from either a nested nutrition
// object or flat top-level keys. Returns nil when no nutrition signal is
// present at all — that nil is how the aggregator selects analysis mode.
func normalizeNutrition(fields map[string]any) *domain.NutritionFacts {
	source := fields
	if nested, ok := lookupAny(fields, nutritionAliases); ok {
		m, ok := nested.(map[string]any)
		if !ok {
			return nil
		}
		source = lowerKeys(m)
	}

	n := &domain.NutritionFacts{ServingSize: strings.TrimSpace(lookupString(source, servingSizeAliases))}
	found := false

	if v, ok := lookupFloat(source, caloriesAliases); ok && v >= 0 && v <= maxCaloriesPerServing {
		n.Calories = v
		found = true
	}
	if v, ok := lookupFloat(source, proteinAliases); ok && v >= 0 && v <= maxGramsPerServing {
		n.ProteinG = v
		found = true
	}
	if v, ok := lookupFloat(source, carbsAliases); ok && v >= 0 && v <= maxGramsPerServing {
		n.CarbsG = v
		found = true
	}
	if v, ok := lookupFloat(source, fatAliases); ok && v >= 0 && v <= maxGramsPerServing {
		n.FatG = v
		found = true
	}
	if v, ok := lookupFloat(source, fiberAliases); ok && v >= 0 && v <= maxGramsPerServing {
		n.FiberG = v
		found = true
	}
	if v, ok := lookupFloat(source, sugarAliases); ok && v >= 0 && v <= maxGramsPerServing {
		n.SugarG = v
		found = true
	}
	if v, ok := lookupFloat(source, sodiumMGAliases); ok && v >= 0 && v <= maxSodiumMGPerServing {
		n.SodiumMG = v
		found = true
	} else if v, ok := lookupFloat(source, sodiumGAliases); ok && v >= 0 && v*1000 <= maxSodiumMGPerServing {
		n.SodiumMG = v * 1000
		found = true
	} else if v, ok := lookupFloat(source, saltGAliases); ok && v >= 0 && v*sodiumMGPerGramSalt <= maxSodiumMGPerServing {
		n.SodiumMG = v * sodiumMGPerGramSalt
		found = true
	}

	if !found {
		return nil
	}
	return n
}

// lowerKeys rebuilds a map with lowercased keys so alias lookups are
// case-insensitive.
func lowerKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func lookupAny(fields map[string]any, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupString(fields map[string]any, aliases []string) string {
	v, ok := lookupAny(fields, aliases)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// lookupStringList accepts both JSON arrays and comma-separated strings.
func lookupStringList(fields map[string]any, aliases []string) []string {
	v, ok := lookupAny(fields, aliases)
	if !ok {
		return nil
	}

	var items []string
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case []string:
		items = x
	case string:
		items = strings.Split(x, ",")
	}

	var cleaned []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

// lookupFloat coerces float64, int, and numeric string values.
func lookupFloat(fields map[string]any, aliases []string) (float64, bool) {
	v, ok := lookupAny(fields, aliases)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func lookupBool(fields map[string]any, aliases []string) bool {
	v, ok := lookupAny(fields, aliases)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return err == nil && b
	}
	return false
}

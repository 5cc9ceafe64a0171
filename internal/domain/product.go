package domain

// Category classifies a scanned product and selects scorer baselines.
type Category string

const (
	CategoryFood         Category = "food"
	CategoryElectronics  Category = "electronics"
	CategoryPersonalCare Category = "personal-care"
	CategoryGeneral      Category = "general"
)

// NutritionFacts holds per-serving nutrition values. Gram fields are grams
// per serving; sodium is milligrams per serving.
type NutritionFacts struct {
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"proteinG"`
	CarbsG      float64 `json:"carbsG"`
	FatG        float64 `json:"fatG"`
	FiberG      float64 `json:"fiberG"`
	SugarG      float64 `json:"sugarG"`
	SodiumMG    float64 `json:"sodiumMg"`
	ServingSize string  `json:"servingSize,omitempty"`
}

// ProductFacts is the canonical, fully-defaulted description of a scanned
// product. It is immutable once constructed; every component downstream of
// the normalizer works only with this type.
type ProductFacts struct {
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Category       Category        `json:"category"`
	Ingredients    []string        `json:"ingredients,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	Packaging      string          `json:"packaging"`
	OriginCountry  string          `json:"originCountry"`
	Nutrition      *NutritionFacts `json:"nutrition,omitempty"`
	Organic        bool            `json:"organic"`
	FairTrade      bool            `json:"fairTrade"`
	LocallySourced bool            `json:"locallySourced"`
	CarbonNeutral  bool            `json:"carbonNeutral"`
}

// Defaults applied by the normalizer when optional fields are absent.
const (
	UnknownPackaging = "unknown packaging"
	UnknownOrigin    = "unspecified"
)

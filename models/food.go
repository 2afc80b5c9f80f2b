package models

// A catalog entry snapshot, as fetched from the food catalog service.
// Immutable for the duration of a composition session; re-fetched when
// the catalog is edited.
type FoodItem struct {
	BaseModel
	Name           string `gorm:"not null;index" json:"name"`
	SimplifiedName string `json:"simplified_name"`
	Group          string `json:"group"`

	// Nutrients per 100 g of the food.
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`

	// Optional semantic-unit metadata ("slice", "tablespoon", …).
	// GramsPerUnit <= 0 means the unit has no defined weight.
	UnitType     string  `json:"unit_type"`
	GramsPerUnit float64 `json:"grams_per_unit"`
}

// NutrientProfile is the per-100g slice of a FoodItem the aggregator
// works with. Missing nutrients are zero, never an error.
type NutrientProfile struct {
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`
}

// UnitMetadata is the semantic-unit slice of a FoodItem.
type UnitMetadata struct {
	UnitType     string  `json:"unit_type"`
	GramsPerUnit float64 `json:"grams_per_unit"`
}

func (f *FoodItem) Profile() NutrientProfile {
	return NutrientProfile{
		CaloriesPer100g: f.CaloriesPer100g,
		ProteinPer100g:  f.ProteinPer100g,
		CarbsPer100g:    f.CarbsPer100g,
		FatPer100g:      f.FatPer100g,
		FiberPer100g:    f.FiberPer100g,
	}
}

// Units returns nil when the food has no semantic unit defined.
func (f *FoodItem) Units() *UnitMetadata {
	if f.UnitType == "" || f.UnitType == UnitGrams {
		return nil
	}
	return &UnitMetadata{UnitType: f.UnitType, GramsPerUnit: f.GramsPerUnit}
}

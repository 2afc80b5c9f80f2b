package services

import (
	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

// MacroTotals is the aggregate over one entry, one meal or a whole
// day. The zero value is the identity element.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (t MacroTotals) Add(o MacroTotals) MacroTotals {
	return MacroTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
	}
}

// NutritionService computes macro totals from gram quantities and
// per-100g profiles. Profiles are always passed in explicitly — there
// is no ambient catalog cache — so every method is a pure function of
// its arguments.
type NutritionService struct{}

func NewNutritionService() *NutritionService {
	return &NutritionService{}
}

// PerEntry scales a per-100g profile to the entry's gram quantity.
// A profile missing a nutrient contributes zero for it.
func (s *NutritionService) PerEntry(grams float64, profile models.NutrientProfile) MacroTotals {
	factor := grams / 100
	return MacroTotals{
		Calories: profile.CaloriesPer100g * factor,
		Protein:  profile.ProteinPer100g * factor,
		Carbs:    profile.CarbsPer100g * factor,
		Fat:      profile.FatPer100g * factor,
	}
}

// PerMeal sums the cached snapshots of a meal's entries. Empty meals
// total zero; order does not matter.
func (s *NutritionService) PerMeal(entries []models.MealEntry) MacroTotals {
	var t MacroTotals
	for _, e := range entries {
		t = t.Add(MacroTotals{Calories: e.Calories, Protein: e.Protein, Carbs: e.Carbs, Fat: e.Fat})
	}
	return t
}

// PerDay sums PerMeal over all meals. Equivalent to flattening every
// entry first and summing once.
func (s *NutritionService) PerDay(meals []models.Meal) MacroTotals {
	var t MacroTotals
	for _, m := range meals {
		t = t.Add(s.PerMeal(m.Entries))
	}
	return t
}

// RecomputeEntry regenerates the entry's macro snapshot from a fresh
// profile. Call it on any quantity, unit or food change so stale
// cached values are never displayed.
func (s *NutritionService) RecomputeEntry(entry *models.MealEntry, profile models.NutrientProfile) {
	t := s.PerEntry(entry.Quantity, profile)
	entry.Calories = t.Calories
	entry.Protein = t.Protein
	entry.Carbs = t.Carbs
	entry.Fat = t.Fat
}

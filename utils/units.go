package utils

import (
	"fmt"
	"math"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

// Singular/plural display labels per unit type.
var unitLabels = map[string][2]string{
	models.UnitSlice:      {"slice", "slices"},
	models.UnitTablespoon: {"tablespoon", "tablespoons"},
	models.UnitTeaspoon:   {"teaspoon", "teaspoons"},
	models.UnitCup:        {"cup", "cups"},
	models.UnitPiece:      {"unit", "units"},
	models.UnitScoop:      {"scoop", "scoops"},
}

// GramsFromUnits converts a semantic-unit count to grams. No rounding;
// rounding is a display concern.
func GramsFromUnits(units, gramsPerUnit float64) float64 {
	return units * gramsPerUnit
}

// UnitsFromGrams converts grams back to a unit count. A unit with no
// defined weight cannot be converted, so gramsPerUnit <= 0 yields 0 —
// recoverable user-input state, not a fatal error.
func UnitsFromGrams(grams, gramsPerUnit float64) float64 {
	if gramsPerUnit <= 0 {
		return 0
	}
	return grams / gramsPerUnit
}

// FormatQuantityDisplay renders an entry quantity for display:
// "100g" when the entry is in grams (or has no unit count), otherwise
// "2 slices (60g)".
func FormatQuantityDisplay(grams, units float64, unitType string) string {
	if unitType == "" || unitType == models.UnitGrams || units == 0 {
		return fmt.Sprintf("%gg", grams)
	}
	labels, ok := unitLabels[unitType]
	if !ok {
		labels = [2]string{unitType, unitType + "s"}
	}
	label := labels[1]
	if units == 1 {
		label = labels[0]
	}
	return fmt.Sprintf("%g %s (%.0fg)", units, label, math.Round(grams))
}

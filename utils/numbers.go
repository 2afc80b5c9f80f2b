package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLocaleNumber parses a quantity or nutrient value that may use a
// comma as the decimal separator ("12,5") as well as a point ("12.5").
// This is the single boundary where the comma/point convention is
// decided; everything past it works in float64.
func ParseLocaleNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	normalized := strings.ReplaceAll(s, ",", ".")
	if strings.Count(normalized, ".") > 1 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

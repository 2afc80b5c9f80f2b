package utils

import "math"

// Status buckets for a macro compared against its goal.
type MacroStatus string

const (
	StatusNeutral MacroStatus = "neutral" // no goal set
	StatusGood    MacroStatus = "good"    // 95–105%
	StatusClose   MacroStatus = "close"   // 90–95% or 105–110%
	StatusLow     MacroStatus = "low"     // < 90%
	StatusHigh    MacroStatus = "high"    // > 110%
)

type MacroEvaluation struct {
	Status  MacroStatus `json:"status"`
	Percent float64     `json:"percent"`    // rounded; 0 when neutral
	Diff    float64     `json:"difference"` // current - goal; 0 when no goal
}

// EvaluateMacro classifies an aggregate value against a nullable goal.
// Absence of a goal (nil, or zero — percentage undefined) is a distinct
// neutral outcome, not "0% of goal". Thresholds are inclusive exactly
// as commented on the status constants.
func EvaluateMacro(current float64, goal *float64) MacroEvaluation {
	if goal == nil || *goal == 0 {
		return MacroEvaluation{Status: StatusNeutral}
	}
	pct := math.Round(current / *goal * 100)
	ev := MacroEvaluation{Percent: pct, Diff: current - *goal}
	switch {
	case pct >= 95 && pct <= 105:
		ev.Status = StatusGood
	case pct < 90:
		ev.Status = StatusLow
	case pct > 110:
		ev.Status = StatusHigh
	default:
		ev.Status = StatusClose
	}
	return ev
}

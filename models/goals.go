package models

// MacroGoals holds a client's macro targets. Goals are scoped to the
// client, not to any single plan: a plan is evaluated against whatever
// goals are currently set. A nil target means "no goal for this macro"
// and evaluates to a neutral status, which is not the same as zero.
type MacroGoals struct {
	BaseModel
	ClientID string `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`

	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`

	WeightKg float64 `json:"weight_kg"` // client body weight, (0, 500]
}

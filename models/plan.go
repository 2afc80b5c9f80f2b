package models

// Unit types a MealEntry quantity can be displayed in. Grams is always
// the canonical storage unit; everything else converts through
// GramsPerUnit on the entry's food.
const (
	UnitGrams      = "grams"
	UnitSlice      = "slice"
	UnitTablespoon = "tablespoon"
	UnitTeaspoon   = "teaspoon"
	UnitCup        = "cup"
	UnitPiece      = "unit"
	UnitScoop      = "scoop"
)

// Fixed vocabulary of meal slots a Meal name is drawn from.
var MealSlots = []string{
	"Breakfast",
	"Morning Snack",
	"Lunch",
	"Afternoon Snack",
	"Dinner",
	"Supper",
}

func ValidMealSlot(name string) bool {
	for _, s := range MealSlots {
		if s == name {
			return true
		}
	}
	return false
}

// DietPlan is one client's concrete plan. The Total* fields are a
// snapshot recomputed when the plan is saved, not a live invariant.
type DietPlan struct {
	BaseModel
	ClientID  string  `gorm:"type:uuid;index;not null" json:"client_id"`
	Name      string  `gorm:"not null" json:"name"`
	WaterGoal float64 `json:"water_goal"` // liters per day
	Notes     string  `json:"notes"`

	Meals         []Meal             `gorm:"foreignKey:PlanID" json:"meals"`
	Substitutions []FoodSubstitution `gorm:"foreignKey:PlanID" json:"substitutions"`

	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

// One Meal slot (Breakfast/Lunch/…), exclusively owned by a plan.
type Meal struct {
	BaseModel
	PlanID        string `gorm:"type:uuid;index;not null" json:"plan_id"`
	Name          string `gorm:"not null" json:"name"` // from MealSlots
	SuggestedTime string `json:"suggested_time"`       // "07:30", free-form
	Position      int    `json:"position"`

	Entries []MealEntry              `gorm:"foreignKey:MealID" json:"entries"`
	Options []MealSubstitutionOption `gorm:"foreignKey:MealID" json:"options"`
}

// MealEntry is one food line inside a meal. Foods are referenced by
// name: the catalog has no foreign key back to plans, so a catalog
// rename orphans existing entries. Quantity in grams is the source of
// truth; QuantityUnits is derived and may go stale if the food's
// GramsPerUnit changes after the entry was written.
type MealEntry struct {
	BaseModel
	MealID        string  `gorm:"type:uuid;index;not null" json:"meal_id"`
	FoodName      string  `gorm:"not null" json:"food_name"`
	Quantity      float64 `json:"quantity"` // grams, canonical
	QuantityUnits float64 `json:"quantity_units"`
	UnitType      string  `json:"unit_type"` // defaults to UnitGrams
	Position      int     `json:"position"`

	// Cached per-entry macro snapshot; regenerated on any quantity,
	// unit or food change.
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealSubstitutionOption is a complete alternate food set for a meal
// slot ("Option 2"). Items are lightweight descriptors decoupled from
// live FoodItem rows and are never included in macro aggregation.
type MealSubstitutionOption struct {
	BaseModel
	MealID string       `gorm:"type:uuid;index;not null" json:"meal_id"`
	Name   string       `gorm:"not null" json:"name"`
	Items  []OptionItem `gorm:"foreignKey:OptionID" json:"items"`

	// ReplacesID carries the durable id this option was edited from.
	// Editing replaces the whole named option, so the next save cycle
	// deletes the old row and inserts this one. In-memory only.
	ReplacesID string `gorm:"-" json:"-"`
}

// OptionItem is one line of a meal substitution option.
type OptionItem struct {
	BaseModel
	OptionID string  `gorm:"type:uuid;index;not null" json:"option_id"`
	FoodName string  `gorm:"not null" json:"food_name"`
	Quantity float64 `json:"quantity"` // grams
	UnitType string  `json:"unit_type"`
	Position int     `json:"position"`
}

// FoodSubstitution maps one original food to an alternate, scoped to a
// plan. Several substitutions may share the same original name.
type FoodSubstitution struct {
	BaseModel
	PlanID             string  `gorm:"type:uuid;index;not null" json:"plan_id"`
	OriginalFoodName   string  `gorm:"not null;index" json:"original_food_name"`
	SubstituteFoodName string  `gorm:"not null" json:"substitute_food_name"`
	SubstituteQuantity float64 `json:"substitute_quantity"` // grams
}

package models

// Template is a reusable, client-independent blueprint for a plan's
// structure. Read-only at materialization time: applying it copies the
// shape into a plan with freshly generated identities, never reusing
// the template's own ids.
type Template struct {
	BaseModel
	Name      string  `gorm:"not null" json:"name"`
	WaterGoal float64 `json:"water_goal"`
	Notes     string  `json:"notes"`

	Meals         []TemplateMeal         `gorm:"foreignKey:TemplateID" json:"meals"`
	Substitutions []TemplateSubstitution `gorm:"foreignKey:TemplateID" json:"substitutions"`
}

type TemplateMeal struct {
	BaseModel
	TemplateID    string `gorm:"type:uuid;index;not null" json:"template_id"`
	Name          string `gorm:"not null" json:"name"`
	SuggestedTime string `json:"suggested_time"`
	Position      int    `json:"position"`

	Foods []TemplateMealFood `gorm:"foreignKey:TemplateMealID" json:"foods"`
}

type TemplateMealFood struct {
	BaseModel
	TemplateMealID string  `gorm:"type:uuid;index;not null" json:"template_meal_id"`
	FoodName       string  `gorm:"not null" json:"food_name"`
	Quantity       float64 `json:"quantity"` // grams
	UnitType       string  `json:"unit_type"`
	Position       int     `json:"position"`
}

// TemplateSubstitution is keyed by a TemplateMealFood id. Identities
// are not meaningful across the template/plan boundary, so
// materialization resolves the key down to a food name.
type TemplateSubstitution struct {
	BaseModel
	TemplateID         string  `gorm:"type:uuid;index;not null" json:"template_id"`
	TemplateMealFoodID string  `gorm:"type:uuid;index;not null" json:"template_meal_food_id"`
	SubstituteFoodName string  `gorm:"not null" json:"substitute_food_name"`
	SubstituteQuantity float64 `json:"substitute_quantity"`
}

package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
	"github.com/CruzAprc/nutri-testes-wl-sub001/utils"
)

// MealController exposes entry and meal-option edits on a saved plan.
// Each handler loads the plan, applies the in-memory operation and
// persists the touched entity right away.
type MealController struct {
	plans *services.PlanService
	store services.Store
}

func NewMealController(plans *services.PlanService, store services.Store) *MealController {
	return &MealController{plans: plans, store: store}
}

func (mc *MealController) findMeal(c *gin.Context) (*models.DietPlan, *models.Meal, bool) {
	plan, err := mc.store.GetPlan(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	mealID := c.Param("mealID")
	for i := range plan.Meals {
		if plan.Meals[i].ID == mealID {
			return plan, &plan.Meals[i], true
		}
	}
	respondError(c, fmt.Errorf("meal %s: %w", mealID, services.ErrNotFound))
	return nil, nil, false
}

func findEntry(meal *models.Meal, entryID string) *models.MealEntry {
	for i := range meal.Entries {
		if meal.Entries[i].ID == entryID {
			return &meal.Entries[i]
		}
	}
	return nil
}

// PATCH /plans/:id/meals/:mealID/entries/:entryID  { "quantity": "150,5" }
// Re-fetches catalog data for the entry's food so the regenerated
// snapshot never reuses stale values.
func (mc *MealController) UpdateEntry(c *gin.Context) {
	var body struct {
		Quantity string `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	grams, err := utils.ParseLocaleNumber(body.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	entry := findEntry(meal, c.Param("entryID"))
	if entry == nil {
		respondError(c, fmt.Errorf("entry %s: %w", c.Param("entryID"), services.ErrNotFound))
		return
	}

	profile, units, err := mc.plans.ResolveFood(entry.FoodName)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := mc.plans.UpdateEntryQuantity(plan.ID, entry, grams, units, profile); err != nil {
		respondError(c, err)
		return
	}
	if err := mc.store.UpdateEntry(entry); err != nil {
		respondError(c, err)
		return
	}

	nutrition := services.NewNutritionService()
	c.JSON(http.StatusOK, gin.H{"entry": entry, "totals": nutrition.PerDay(plan.Meals)})
}

// POST /plans/:id/meals/:mealID/entries/:entryID/switch-unit  { "unit_type": "slice" }
// Quantity and cached macros reset to force re-entry under the new
// unit.
func (mc *MealController) SwitchEntryUnit(c *gin.Context) {
	var body struct {
		UnitType string `json:"unit_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	entry := findEntry(meal, c.Param("entryID"))
	if entry == nil {
		respondError(c, fmt.Errorf("entry %s: %w", c.Param("entryID"), services.ErrNotFound))
		return
	}

	mc.plans.SwitchEntryUnit(plan.ID, entry, body.UnitType)
	if err := mc.store.UpdateEntry(entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DELETE /plans/:id/meals/:mealID/entries/:entryID
func (mc *MealController) DeleteEntry(c *gin.Context) {
	_, meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	if findEntry(meal, c.Param("entryID")) == nil {
		respondError(c, fmt.Errorf("entry %s: %w", c.Param("entryID"), services.ErrNotFound))
		return
	}
	if err := mc.store.DeleteEntry(c.Param("entryID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type optionRequest struct {
	Name  string `json:"name"`
	Items []struct {
		FoodName string `json:"food_name" binding:"required"`
		Quantity string `json:"quantity" binding:"required"`
		UnitType string `json:"unit_type"`
	} `json:"items" binding:"required"`
}

func (r *optionRequest) toOption() (models.MealSubstitutionOption, error) {
	opt := models.MealSubstitutionOption{Name: r.Name}
	for i, it := range r.Items {
		grams, err := utils.ParseLocaleNumber(it.Quantity)
		if err != nil {
			return opt, err
		}
		opt.Items = append(opt.Items, models.OptionItem{
			FoodName: it.FoodName,
			Quantity: grams,
			UnitType: it.UnitType,
			Position: i,
		})
	}
	return opt, nil
}

// POST /plans/:id/meals/:mealID/options
// Appends a whole named option; a blank name derives "Option N".
func (mc *MealController) AppendOption(c *gin.Context) {
	var body optionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opt, err := body.toOption()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	services.AppendMealOption(meal, opt)

	created := &meal.Options[len(meal.Options)-1]
	created.MealID = meal.ID
	created.ID = ""
	id, err := mc.store.CreateOption(created)
	if err != nil {
		respondError(c, err)
		return
	}
	created.ID = id
	c.JSON(http.StatusCreated, created)
}

// PUT /plans/:id/meals/:mealID/options/:optionID
// The whole named option is the unit of change: the old row is
// deleted and the edited one inserted in its place.
func (mc *MealController) ReplaceOption(c *gin.Context) {
	var body optionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opt, err := body.toOption()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opt.ID = c.Param("optionID")

	_, meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	if err := services.ReplaceMealOption(meal, opt); err != nil {
		respondError(c, err)
		return
	}

	var replaced *models.MealSubstitutionOption
	for i := range meal.Options {
		if meal.Options[i].ReplacesID == c.Param("optionID") {
			replaced = &meal.Options[i]
			break
		}
	}
	if replaced == nil {
		respondError(c, fmt.Errorf("meal option %s: %w", c.Param("optionID"), services.ErrNotFound))
		return
	}
	if err := mc.store.DeleteOption(replaced.ReplacesID); err != nil {
		respondError(c, err)
		return
	}
	replaced.ReplacesID = ""
	replaced.MealID = meal.ID
	replaced.ID = ""
	id, err := mc.store.CreateOption(replaced)
	if err != nil {
		respondError(c, err)
		return
	}
	replaced.ID = id
	c.JSON(http.StatusOK, replaced)
}

// DELETE /plans/:id/meals/:mealID/options/:optionID
func (mc *MealController) DeleteOption(c *gin.Context) {
	_, meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	found := false
	for _, o := range meal.Options {
		if o.ID == c.Param("optionID") {
			found = true
			break
		}
	}
	if !found {
		respondError(c, fmt.Errorf("meal option %s: %w", c.Param("optionID"), services.ErrNotFound))
		return
	}
	if err := mc.store.DeleteOption(c.Param("optionID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

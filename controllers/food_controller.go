package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
	"github.com/CruzAprc/nutri-testes-wl-sub001/utils"
)

type FoodController struct {
	search  *services.SearchService
	catalog services.Catalog
	plans   *services.PlanService
}

func NewFoodController(search *services.SearchService, catalog services.Catalog, plans *services.PlanService) *FoodController {
	return &FoodController{search: search, catalog: catalog, plans: plans}
}

// GET /foods/search?q=frango peito
// The three outcomes (type_more, no_matches, results) are distinct so
// the picker can render each differently. Callers debounce keystrokes
// ~300 ms before hitting this.
func (fc *FoodController) SearchFoods(c *gin.Context) {
	res := fc.search.SearchFoods(c.Query("q"))
	c.JSON(http.StatusOK, res)
}

// POST /foods/preview  { "food_id": "…", "food_name": "…", "quantity": "12,5", "unit_type": "slice" }
// Computes the entry line a picker selection would produce — macro
// snapshot included — without persisting anything. Quantity accepts a
// comma decimal separator.
func (fc *FoodController) PreviewEntry(c *gin.Context) {
	var body struct {
		FoodID   string `json:"food_id" binding:"required"`
		FoodName string `json:"food_name" binding:"required"`
		Quantity string `json:"quantity" binding:"required"`
		UnitType string `json:"unit_type"`
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

	profile, err := fc.catalog.GetNutrientProfile(body.FoodID)
	if err != nil {
		respondError(c, err)
		return
	}
	units, err := fc.catalog.GetUnitMetadata(body.FoodID)
	if err != nil {
		respondError(c, err)
		return
	}

	food := models.FoodItem{
		Name:            body.FoodName,
		CaloriesPer100g: profile.CaloriesPer100g,
		ProteinPer100g:  profile.ProteinPer100g,
		CarbsPer100g:    profile.CarbsPer100g,
		FatPer100g:      profile.FatPer100g,
		FiberPer100g:    profile.FiberPer100g,
	}
	if units != nil {
		food.UnitType = units.UnitType
		food.GramsPerUnit = units.GramsPerUnit
	}

	meal := models.Meal{}
	entry, err := fc.plans.AddEntry(&meal, food, grams)
	if err != nil {
		respondError(c, err)
		return
	}

	display := utils.FormatQuantityDisplay(entry.Quantity, entry.QuantityUnits, entry.UnitType)
	c.JSON(http.StatusOK, gin.H{"entry": entry, "display": display})
}

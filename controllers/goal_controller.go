package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
)

type GoalController struct {
	store services.Store
}

func NewGoalController(store services.Store) *GoalController {
	return &GoalController{store: store}
}

// GET /clients/:clientID/goals
func (gc *GoalController) GetGoals(c *gin.Context) {
	goals, err := gc.store.GetGoals(c.Param("clientID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// PUT /clients/:clientID/goals
// Absent macros stay nil — "no goal" evaluates neutral, which is not
// the same as a zero target.
func (gc *GoalController) UpdateGoals(c *gin.Context) {
	var req struct {
		Calories *float64 `json:"calories"`
		Protein  *float64 `json:"protein"`
		Carbs    *float64 `json:"carbs"`
		Fat      *float64 `json:"fat"`
		Fiber    *float64 `json:"fiber"`
		WeightKg float64  `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidateWeight(req.WeightKg); err != nil {
		respondError(c, err)
		return
	}

	goals := models.MacroGoals{
		ClientID: c.Param("clientID"),
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
		WeightKg: req.WeightKg,
	}
	if err := gc.store.UpsertGoals(&goals); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
	"github.com/CruzAprc/nutri-testes-wl-sub001/utils"
)

type PlanController struct {
	plans *services.PlanService
	store services.Store
}

func NewPlanController(plans *services.PlanService, store services.Store) *PlanController {
	return &PlanController{plans: plans, store: store}
}

func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var ee *services.ExternalServiceError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &ee):
		c.JSON(http.StatusBadGateway, gin.H{"error": ee.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GET /plans/:id
// Live totals are recomputed here; the persisted totals on the plan
// row are only the last-save snapshot.
func (pc *PlanController) GetPlan(c *gin.Context) {
	plan, totals, err := pc.plans.GetPlanWithTotals(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var goals *models.MacroGoals
	if g, err := pc.store.GetGoals(plan.ClientID); err == nil {
		goals = g
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":       plan,
		"totals":     totals,
		"evaluation": pc.plans.EvaluateGoals(totals, goals),
	})
}

// PUT /plans/:id
// Full save: the composed plan plus the session's substitution adds
// and removes. Persisted as a stop-at-first-failure step sequence; on
// error the store may be partially updated and the client re-triggers.
func (pc *PlanController) SavePlan(c *gin.Context) {
	var body struct {
		Plan             models.DietPlan `json:"plan" binding:"required"`
		AddSubstitutions []struct {
			OriginalFoodName   string  `json:"original_food_name"`
			SubstituteFoodName string  `json:"substitute_food_name"`
			SubstituteQuantity float64 `json:"substitute_quantity"`
		} `json:"add_substitutions"`
		RemoveSubstitutions []string `json:"remove_substitutions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := body.Plan
	plan.ID = c.Param("id")
	for _, m := range plan.Meals {
		if !models.ValidMealSlot(m.Name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal slot: " + m.Name})
			return
		}
	}

	registry := services.NewSubstitutionRegistry(plan.Substitutions)
	for _, a := range body.AddSubstitutions {
		if _, err := registry.Add(plan.ID, a.OriginalFoodName, a.SubstituteFoodName, a.SubstituteQuantity); err != nil {
			respondError(c, err)
			return
		}
	}
	for _, id := range body.RemoveSubstitutions {
		registry.Remove(id)
	}

	state, err := pc.plans.SavePlan(&plan, registry)
	if err != nil {
		var ee *services.ExternalServiceError
		if errors.As(err, &ee) {
			c.JSON(http.StatusBadGateway, gin.H{"state": state, "error": ee.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"state": state, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "plan": plan, "substitutions": registry.All()})
}

// GET /plans/:id/substitutions?original=Frango
func (pc *PlanController) ListSubstitutions(c *gin.Context) {
	plan, err := pc.store.GetPlan(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	registry := services.NewSubstitutionRegistry(plan.Substitutions)
	original := c.Query("original")
	if original == "" {
		c.JSON(http.StatusOK, registry.All())
		return
	}
	c.JSON(http.StatusOK, registry.ListFor(original))
}

// GET /plans/:id/display?grams=100&units=2&unit_type=slice
// Quantity display formatting for an entry row.
func (pc *PlanController) FormatQuantity(c *gin.Context) {
	grams, err := utils.ParseLocaleNumber(c.DefaultQuery("grams", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	units, err := utils.ParseLocaleNumber(c.DefaultQuery("units", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"display": utils.FormatQuantityDisplay(grams, units, c.Query("unit_type")),
	})
}

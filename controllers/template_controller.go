package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
)

type TemplateController struct {
	templates *services.TemplateService
	store     services.Store
}

func NewTemplateController(templates *services.TemplateService, store services.Store) *TemplateController {
	return &TemplateController{templates: templates, store: store}
}

// GET /templates
func (tc *TemplateController) ListTemplates(c *gin.Context) {
	tpls, err := tc.templates.ListTemplates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpls)
}

// POST /plans/:id/apply-template  { "template_id": "…" }
// One "apply template" action for the practitioner; underneath, the
// plan's durable meals and substitutions are deleted and the template
// shape is rebuilt in memory under fresh temporary ids. The result is
// returned unsaved — the practitioner sees totals before ever saving.
func (tc *TemplateController) ApplyTemplate(c *gin.Context) {
	var body struct {
		TemplateID string `json:"template_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := tc.store.GetPlan(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	registry, err := tc.templates.Materialize(body.TemplateID, plan)
	if err != nil {
		respondError(c, err)
		return
	}

	nutrition := services.NewNutritionService()
	c.JSON(http.StatusOK, gin.H{
		"plan":          plan,
		"substitutions": registry.All(),
		"totals":        nutrition.PerDay(plan.Meals),
	})
}

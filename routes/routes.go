package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CruzAprc/nutri-testes-wl-sub001/controllers"
	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
)

func SetupRouter(hub *services.PlanHub) *gin.Engine {
	r := gin.Default()

	store := services.NewGormStore()
	catalog := services.NewCatalogService()
	planSvc := services.NewPlanService(store, catalog, hub)
	searchSvc := services.NewSearchService(catalog)
	templateSvc := services.NewTemplateService(store, catalog)

	foodCtl := controllers.NewFoodController(searchSvc, catalog, planSvc)
	planCtl := controllers.NewPlanController(planSvc, store)
	mealCtl := controllers.NewMealController(planSvc, store)
	goalCtl := controllers.NewGoalController(store)
	tplCtl := controllers.NewTemplateController(templateSvc, store)
	rtCtl := controllers.NewRealtimeController(hub)

	foods := r.Group("/foods")
	{
		foods.GET("/search", foodCtl.SearchFoods)
		foods.POST("/preview", foodCtl.PreviewEntry)
	}

	plans := r.Group("/plans")
	{
		plans.GET("/:id", planCtl.GetPlan)
		plans.PUT("/:id", planCtl.SavePlan)
		plans.GET("/:id/substitutions", planCtl.ListSubstitutions)
		plans.GET("/:id/display", planCtl.FormatQuantity)
		plans.POST("/:id/apply-template", tplCtl.ApplyTemplate)
		plans.GET("/:id/events", rtCtl.PlanEventsWS)

		plans.PATCH("/:id/meals/:mealID/entries/:entryID", mealCtl.UpdateEntry)
		plans.POST("/:id/meals/:mealID/entries/:entryID/switch-unit", mealCtl.SwitchEntryUnit)
		plans.DELETE("/:id/meals/:mealID/entries/:entryID", mealCtl.DeleteEntry)
		plans.POST("/:id/meals/:mealID/options", mealCtl.AppendOption)
		plans.PUT("/:id/meals/:mealID/options/:optionID", mealCtl.ReplaceOption)
		plans.DELETE("/:id/meals/:mealID/options/:optionID", mealCtl.DeleteOption)
	}

	clients := r.Group("/clients")
	{
		clients.GET("/:clientID/goals", goalCtl.GetGoals)
		clients.PUT("/:clientID/goals", goalCtl.UpdateGoals)
	}

	r.GET("/templates", tplCtl.ListTemplates)

	return r
}

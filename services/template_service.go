package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

// TemplateService materializes a reusable template into a concrete
// plan: same meal/entry/substitution counts and relative structure,
// every identity freshly generated.
type TemplateService struct {
	store     Store
	catalog   Catalog
	nutrition *NutritionService
}

func NewTemplateService(store Store, catalog Catalog) *TemplateService {
	return &TemplateService{store: store, catalog: catalog, nutrition: NewNutritionService()}
}

func (s *TemplateService) ListTemplates() ([]models.Template, error) {
	return s.store.ListTemplates()
}

// Materialize applies a template to an existing plan. The caller sees
// one "apply template" action; underneath it is a sequence of
// independent delete steps against the store followed by in-memory
// rebuilding, with no compensating rollback — a failure partway
// through leaves the store partially updated.
//
// The plan's durable meals and substitutions are deleted first
// (cascades remove children). Each template meal then becomes a new
// in-memory meal under a temporary identity; template substitutions
// are resolved from template-food ids down to food names, since ids
// mean nothing across the template/plan boundary. Macro snapshots are
// computed immediately from freshly fetched catalog data so totals are
// visible before the plan is ever saved.
func (s *TemplateService) Materialize(templateID string, plan *models.DietPlan) (*SubstitutionRegistry, error) {
	tpl, err := s.store.GetTemplate(templateID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("template %s: %w", templateID, ErrNotFound)
		}
		return nil, &ExternalServiceError{Op: "load template", Err: err}
	}

	if plan.ID != "" && !models.IsTempID(plan.ID) {
		if err := s.store.DeleteMealsForPlan(plan.ID); err != nil {
			return nil, &ExternalServiceError{Op: "discard plan meals", Err: err}
		}
		if err := s.store.DeleteSubstitutionsForPlan(plan.ID); err != nil {
			return nil, &ExternalServiceError{Op: "discard plan substitutions", Err: err}
		}
	}

	// template-food id → food name, for resolving substitutions.
	foodNames := make(map[string]string)

	meals := make([]models.Meal, 0, len(tpl.Meals))
	for i, tm := range tpl.Meals {
		meal := models.Meal{
			PlanID:        plan.ID,
			Name:          tm.Name,
			SuggestedTime: tm.SuggestedTime,
			Position:      i,
		}
		meal.ID = models.NewTempID()

		for j, tf := range tm.Foods {
			foodNames[tf.ID] = tf.FoodName

			entry := models.MealEntry{
				MealID:   meal.ID,
				FoodName: tf.FoodName,
				Quantity: tf.Quantity,
				UnitType: tf.UnitType,
				Position: j,
			}
			entry.ID = models.NewTempID()
			if entry.UnitType == "" {
				entry.UnitType = models.UnitGrams
			}

			profile, err := s.profileByName(tf.FoodName)
			if err != nil {
				return nil, err
			}
			s.nutrition.RecomputeEntry(&entry, profile)
			meal.Entries = append(meal.Entries, entry)
		}
		meals = append(meals, meal)
	}

	registry := NewSubstitutionRegistry(nil)
	for _, ts := range tpl.Substitutions {
		original, ok := foodNames[ts.TemplateMealFoodID]
		if !ok {
			return nil, fmt.Errorf("template food %s: %w", ts.TemplateMealFoodID, ErrNotFound)
		}
		if _, err := registry.Add(plan.ID, original, ts.SubstituteFoodName, ts.SubstituteQuantity); err != nil {
			return nil, err
		}
	}

	plan.Meals = meals
	plan.Substitutions = nil
	plan.WaterGoal = tpl.WaterGoal
	if tpl.Notes != "" {
		plan.Notes = tpl.Notes
	}
	return registry, nil
}

// profileByName resolves a name-based food reference. An orphan name
// aggregates as all-zero; an actual catalog failure aborts the
// sequence.
func (s *TemplateService) profileByName(name string) (models.NutrientProfile, error) {
	item, err := resolveFoodByName(s.catalog, name)
	if err != nil {
		return models.NutrientProfile{}, err
	}
	if item == nil {
		log.Printf("materialize: no catalog match for food %q, using zero profile", name)
		return models.NutrientProfile{}, nil
	}
	return item.Profile(), nil
}

package services

import (
	"fmt"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
	"github.com/CruzAprc/nutri-testes-wl-sub001/utils"
)

// SaveState is the three-state lifecycle a plan save exposes to the
// caller: idle → saving → (success | error). The terminal state is
// reported once; auto-reverting the display back to idle is the
// caller's timer, not ours.
type SaveState string

const (
	SaveIdle    SaveState = "idle"
	SaveSaving  SaveState = "saving"
	SaveSuccess SaveState = "success"
	SaveError   SaveState = "error"
)

// PlanService holds the composition operations on a plan: entry edits,
// unit switches, goal evaluation and the save sequence. All in-memory
// work is synchronous; only store and catalog calls go out.
type PlanService struct {
	store     Store
	catalog   Catalog
	nutrition *NutritionService
	hub       *PlanHub // optional

	saveState SaveState
}

func NewPlanService(store Store, catalog Catalog, hub *PlanHub) *PlanService {
	return &PlanService{
		store:     store,
		catalog:   catalog,
		nutrition: NewNutritionService(),
		hub:       hub,
		saveState: SaveIdle,
	}
}

func (s *PlanService) SaveStateNow() SaveState { return s.saveState }

// GetPlanWithTotals loads a plan and computes its live daily totals
// (the persisted Total* fields are only the last-save snapshot).
func (s *PlanService) GetPlanWithTotals(planID string) (*models.DietPlan, MacroTotals, error) {
	plan, err := s.store.GetPlan(planID)
	if err != nil {
		return nil, MacroTotals{}, err
	}
	return plan, s.nutrition.PerDay(plan.Meals), nil
}

// AddEntry appends a food line to a meal under a temporary identity
// and computes its macro snapshot immediately from the catalog
// profile passed in.
func (s *PlanService) AddEntry(meal *models.Meal, food models.FoodItem, grams float64) (*models.MealEntry, error) {
	if grams <= 0 {
		return nil, &ValidationError{Field: "quantity", Message: "must be positive"}
	}
	entry := models.MealEntry{
		MealID:   meal.ID,
		FoodName: food.Name,
		Quantity: grams,
		UnitType: models.UnitGrams,
		Position: len(meal.Entries),
	}
	entry.ID = models.NewTempID()
	if u := food.Units(); u != nil && u.GramsPerUnit > 0 {
		entry.UnitType = u.UnitType
		entry.QuantityUnits = utils.UnitsFromGrams(grams, u.GramsPerUnit)
	}
	s.nutrition.RecomputeEntry(&entry, food.Profile())
	meal.Entries = append(meal.Entries, entry)
	s.notify(meal.PlanID, "totals_changed")
	return &meal.Entries[len(meal.Entries)-1], nil
}

// UpdateEntryQuantity sets a new gram quantity and regenerates both
// the derived unit count and the macro snapshot.
func (s *PlanService) UpdateEntryQuantity(planID string, entry *models.MealEntry, grams float64, units *models.UnitMetadata, profile models.NutrientProfile) error {
	if grams <= 0 {
		return &ValidationError{Field: "quantity", Message: "must be positive"}
	}
	entry.Quantity = grams
	if units != nil {
		entry.QuantityUnits = utils.UnitsFromGrams(grams, units.GramsPerUnit)
	} else {
		entry.QuantityUnits = 0
	}
	s.nutrition.RecomputeEntry(entry, profile)
	s.notify(planID, "totals_changed")
	return nil
}

// SwitchEntryUnit changes the display unit and resets quantity and
// cached macros to force re-entry, so totals computed under the old
// unit are never shown as if they still applied.
func (s *PlanService) SwitchEntryUnit(planID string, entry *models.MealEntry, unitType string) {
	entry.UnitType = unitType
	entry.Quantity = 0
	entry.QuantityUnits = 0
	entry.Calories = 0
	entry.Protein = 0
	entry.Carbs = 0
	entry.Fat = 0
	s.notify(planID, "totals_changed")
}

// ResolveFood fetches fresh catalog data for a name-based food
// reference before an entry recompute. Orphan names resolve to a zero
// profile and no unit metadata.
func (s *PlanService) ResolveFood(name string) (models.NutrientProfile, *models.UnitMetadata, error) {
	item, err := resolveFoodByName(s.catalog, name)
	if err != nil {
		return models.NutrientProfile{}, nil, err
	}
	if item == nil {
		return models.NutrientProfile{}, nil, nil
	}
	return item.Profile(), item.Units(), nil
}

// EvaluateGoals classifies the plan's current totals against the
// client's goals, one evaluation per macro. A missing goals row means
// every macro is neutral.
func (s *PlanService) EvaluateGoals(totals MacroTotals, goals *models.MacroGoals) map[string]utils.MacroEvaluation {
	if goals == nil {
		goals = &models.MacroGoals{}
	}
	return map[string]utils.MacroEvaluation{
		"calories": utils.EvaluateMacro(totals.Calories, goals.Calories),
		"protein":  utils.EvaluateMacro(totals.Protein, goals.Protein),
		"carbs":    utils.EvaluateMacro(totals.Carbs, goals.Carbs),
		"fat":      utils.EvaluateMacro(totals.Fat, goals.Fat),
	}
}

// ValidateWeight checks a client body weight in kg, (0, 500].
func ValidateWeight(kg float64) error {
	if kg <= 0 || kg > 500 {
		return &ValidationError{Field: "weight_kg", Message: "must be in (0, 500]"}
	}
	return nil
}

// SavePlan persists the plan as a sequence of awaited per-entity
// steps: plan → each meal → each meal's entries and options →
// substitution adds and deletes. There is no transaction around the
// sequence; it stops at the first failure and already-applied steps
// stay applied. Daily totals are recomputed and stored as a snapshot
// before the first store call.
func (s *PlanService) SavePlan(plan *models.DietPlan, registry *SubstitutionRegistry) (SaveState, error) {
	s.saveState = SaveSaving
	s.notify(plan.ID, "save_started")

	fail := func(step string, err error) (SaveState, error) {
		s.saveState = SaveError
		s.notify(plan.ID, "save_failed")
		return SaveError, &ExternalServiceError{Op: step, Err: err}
	}

	totals := s.nutrition.PerDay(plan.Meals)
	plan.TotalCalories = totals.Calories
	plan.TotalProtein = totals.Protein
	plan.TotalCarbs = totals.Carbs
	plan.TotalFat = totals.Fat

	if models.IsTempID(plan.ID) || plan.ID == "" {
		id, err := s.store.CreatePlan(plan)
		if err != nil {
			return fail("save plan", err)
		}
		plan.ID = id
	} else if err := s.store.UpdatePlan(plan); err != nil {
		return fail("save plan", err)
	}

	for i := range plan.Meals {
		meal := &plan.Meals[i]
		meal.PlanID = plan.ID
		meal.Position = i
		if models.IsTempID(meal.ID) || meal.ID == "" {
			id, err := s.store.CreateMeal(meal)
			if err != nil {
				return fail(fmt.Sprintf("save meal %q", meal.Name), err)
			}
			meal.ID = id
		} else if err := s.store.UpdateMeal(meal); err != nil {
			return fail(fmt.Sprintf("save meal %q", meal.Name), err)
		}

		for j := range meal.Entries {
			entry := &meal.Entries[j]
			entry.MealID = meal.ID
			entry.Position = j
			if models.IsTempID(entry.ID) || entry.ID == "" {
				id, err := s.store.CreateEntry(entry)
				if err != nil {
					return fail(fmt.Sprintf("save entry %q", entry.FoodName), err)
				}
				entry.ID = id
			} else if err := s.store.UpdateEntry(entry); err != nil {
				return fail(fmt.Sprintf("save entry %q", entry.FoodName), err)
			}
		}

		for k := range meal.Options {
			opt := &meal.Options[k]
			if !models.IsTempID(opt.ID) && opt.ID != "" {
				continue // untouched durable options are never patched
			}
			if opt.ReplacesID != "" {
				if err := s.store.DeleteOption(opt.ReplacesID); err != nil {
					return fail(fmt.Sprintf("replace meal option %q", opt.Name), err)
				}
				opt.ReplacesID = ""
			}
			opt.MealID = meal.ID
			opt.ID = ""
			id, err := s.store.CreateOption(opt)
			if err != nil {
				return fail(fmt.Sprintf("save meal option %q", opt.Name), err)
			}
			opt.ID = id
		}
	}

	if registry != nil {
		for _, sub := range registry.PendingAdds() {
			tempID := sub.ID
			sub.PlanID = plan.ID
			sub.ID = ""
			id, err := s.store.CreateSubstitution(&sub)
			if err != nil {
				return fail(fmt.Sprintf("save substitution for %q", sub.OriginalFoodName), err)
			}
			registry.CommitAdd(tempID, id)
		}
		for _, id := range registry.PendingDeletes() {
			if err := s.store.DeleteSubstitution(id); err != nil {
				return fail("delete substitution", err)
			}
			registry.CommitDelete(id)
		}
	}

	s.saveState = SaveSuccess
	s.notify(plan.ID, "save_succeeded")
	return SaveSuccess, nil
}

func (s *PlanService) notify(planID, event string) {
	if s.hub != nil && planID != "" {
		s.hub.Broadcast(planID, PlanEvent{PlanID: planID, Event: event})
	}
}

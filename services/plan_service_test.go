package services

import (
	"errors"
	"testing"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

func chickenFood() models.FoodItem {
	f := models.FoodItem{
		Name:            "Peito de Frango",
		CaloriesPer100g: 165,
		ProteinPer100g:  31,
		FatPer100g:      3.6,
	}
	f.ID = models.NewID()
	return f
}

func breadFood() models.FoodItem {
	f := models.FoodItem{
		Name:            "Pão de Forma",
		CaloriesPer100g: 250,
		CarbsPer100g:    48,
		UnitType:        models.UnitSlice,
		GramsPerUnit:    25,
	}
	f.ID = models.NewID()
	return f
}

func newPlanService(store *fakeStore) *PlanService {
	return NewPlanService(store, &fakeCatalog{}, nil)
}

func TestAddEntryComputesSnapshotAndUnits(t *testing.T) {
	svc := newPlanService(newFakeStore())
	meal := models.Meal{Name: "Breakfast"}

	entry, err := svc.AddEntry(&meal, breadFood(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !models.IsTempID(entry.ID) {
		t.Errorf("new entry should carry a temporary id, got %s", entry.ID)
	}
	if entry.UnitType != models.UnitSlice || entry.QuantityUnits != 2 {
		t.Errorf("unit derivation wrong: %+v", entry)
	}
	if entry.Calories != 125 || entry.Carbs != 24 {
		t.Errorf("macro snapshot wrong: %+v", entry)
	}
}

func TestAddEntryRejectsNonPositiveQuantity(t *testing.T) {
	svc := newPlanService(newFakeStore())
	meal := models.Meal{Name: "Lunch"}
	for _, grams := range []float64{0, -10} {
		if _, err := svc.AddEntry(&meal, chickenFood(), grams); err == nil {
			t.Errorf("expected validation error for %v grams", grams)
		}
	}
	if len(meal.Entries) != 0 {
		t.Errorf("failed validation must leave no partial effect")
	}
}

func TestUpdateEntryQuantityRegeneratesSnapshot(t *testing.T) {
	svc := newPlanService(newFakeStore())
	meal := models.Meal{Name: "Lunch"}
	food := chickenFood()
	entry, _ := svc.AddEntry(&meal, food, 100)

	if err := svc.UpdateEntryQuantity("plan", entry, 200, nil, food.Profile()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Calories != 330 || entry.Protein != 62 {
		t.Errorf("snapshot not regenerated: %+v", entry)
	}
}

func TestSwitchEntryUnitResetsQuantityAndMacros(t *testing.T) {
	svc := newPlanService(newFakeStore())
	meal := models.Meal{Name: "Breakfast"}
	entry, _ := svc.AddEntry(&meal, breadFood(), 50)

	svc.SwitchEntryUnit("plan", entry, models.UnitGrams)

	if entry.Quantity != 0 || entry.QuantityUnits != 0 {
		t.Errorf("quantity not reset: %+v", entry)
	}
	if entry.Calories != 0 || entry.Protein != 0 || entry.Carbs != 0 || entry.Fat != 0 {
		t.Errorf("cached macros not reset: %+v", entry)
	}
	if entry.UnitType != models.UnitGrams {
		t.Errorf("unit type not switched: %+v", entry)
	}
}

func composedPlan(svc *PlanService) *models.DietPlan {
	plan := &models.DietPlan{ClientID: "client-1", Name: "Plano semanal", WaterGoal: 2.5}
	plan.ID = models.NewTempID()

	breakfast := models.Meal{Name: "Breakfast"}
	breakfast.ID = models.NewTempID()
	svc.AddEntry(&breakfast, breadFood(), 50)

	lunch := models.Meal{Name: "Lunch"}
	lunch.ID = models.NewTempID()
	svc.AddEntry(&lunch, chickenFood(), 200)

	plan.Meals = []models.Meal{breakfast, lunch}
	return plan
}

func TestSavePlanAssignsDurableIdentities(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)
	plan := composedPlan(svc)

	registry := NewSubstitutionRegistry(nil)
	registry.Add(plan.ID, "Peito de Frango", "Tilápia", 120)

	state, err := svc.SavePlan(plan, registry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != SaveSuccess {
		t.Errorf("state = %s, want success", state)
	}

	if models.IsTempID(plan.ID) {
		t.Errorf("plan id still temporary after save")
	}
	for _, m := range plan.Meals {
		if models.IsTempID(m.ID) {
			t.Errorf("meal %q id still temporary", m.Name)
		}
		for _, e := range m.Entries {
			if models.IsTempID(e.ID) {
				t.Errorf("entry %q id still temporary", e.FoodName)
			}
			if e.MealID != m.ID {
				t.Errorf("entry %q not re-parented to durable meal id", e.FoodName)
			}
		}
	}
	if len(registry.PendingAdds()) != 0 {
		t.Errorf("substitution adds not committed")
	}
}

func TestSavePlanRefreshesTotalsSnapshot(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)
	plan := composedPlan(svc)

	if _, err := svc.SavePlan(plan, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 50g bread (125 kcal) + 200g chicken (330 kcal)
	if plan.TotalCalories != 455 {
		t.Errorf("total calories snapshot = %v, want 455", plan.TotalCalories)
	}
	if plan.TotalProtein != 62 {
		t.Errorf("total protein snapshot = %v, want 62", plan.TotalProtein)
	}
}

func TestSavePlanStopsAtFirstFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn = "create entry"
	svc := newPlanService(store)
	plan := composedPlan(svc)

	state, err := svc.SavePlan(plan, nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	if state != SaveError {
		t.Errorf("state = %s, want error", state)
	}
	var ee *ExternalServiceError
	if !errors.As(err, &ee) {
		t.Errorf("error type = %T, want ExternalServiceError", err)
	}

	// the plan and first meal were created before the failing step and
	// stay applied — stop-at-first-failure, no rollback
	if len(store.plans) != 1 {
		t.Errorf("plan insert should remain applied")
	}
	if len(store.createdMeals) != 1 {
		t.Errorf("meal inserts before the failure should remain, got %d", len(store.createdMeals))
	}
	if len(store.createdEntries) != 0 {
		t.Errorf("no entry should have been created")
	}
}

func TestSavePlanCommitsSubstitutionDeletes(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)
	plan := composedPlan(svc)

	registry := NewSubstitutionRegistry([]models.FoodSubstitution{durableSub("d1", "Pão de Forma", "Tapioca")})
	registry.Remove("d1")

	if _, err := svc.SavePlan(plan, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deletedSubs) != 1 || store.deletedSubs[0] != "d1" {
		t.Errorf("durable delete not issued: %v", store.deletedSubs)
	}
	if len(registry.PendingDeletes()) != 0 {
		t.Errorf("delete not committed in registry")
	}
}

func TestSavePlanPersistsReplacedDurableOption(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)
	plan := composedPlan(svc)

	durable := models.MealSubstitutionOption{Name: "Option 2"}
	durable.ID = "opt-durable-1"
	plan.Meals[0].Options = append(plan.Meals[0].Options, durable)

	revised := models.MealSubstitutionOption{Name: "Option 2"}
	revised.ID = durable.ID
	revised.Items = []models.OptionItem{{FoodName: "Tapioca", Quantity: 60}}
	if err := ReplaceMealOption(&plan.Meals[0], revised); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.SavePlan(plan, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.deletedOptions) != 1 || store.deletedOptions[0] != "opt-durable-1" {
		t.Errorf("old option row not deleted: %v", store.deletedOptions)
	}
	if len(store.createdOptions) != 1 || store.createdOptions[0].Name != "Option 2" {
		t.Fatalf("edited option not recreated: %v", store.createdOptions)
	}
	if got := plan.Meals[0].Options[0]; models.IsTempID(got.ID) || got.ReplacesID != "" {
		t.Errorf("option not promoted to its new durable row: %+v", got)
	}
}

func TestSavePlanLeavesUntouchedDurableOptionsAlone(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)
	plan := composedPlan(svc)

	durable := models.MealSubstitutionOption{Name: "Option 2"}
	durable.ID = "opt-durable-1"
	plan.Meals[0].Options = append(plan.Meals[0].Options, durable)

	if _, err := svc.SavePlan(plan, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deletedOptions) != 0 || len(store.createdOptions) != 0 {
		t.Errorf("unedited durable option should not be rewritten")
	}
}

func TestSavePlanTerminalStateReportedOnce(t *testing.T) {
	store := newFakeStore()
	svc := newPlanService(store)
	plan := composedPlan(svc)

	state, _ := svc.SavePlan(plan, nil)
	if state != SaveSuccess || svc.SaveStateNow() != SaveSuccess {
		t.Errorf("terminal state not reported")
	}
	// reverting the display back to idle is the caller's timer; the
	// service itself keeps the last terminal state
}

func TestEvaluateGoalsBuildsPerMacroStatuses(t *testing.T) {
	svc := newPlanService(newFakeStore())
	protein := 100.0
	goals := &models.MacroGoals{Protein: &protein}

	eval := svc.EvaluateGoals(MacroTotals{Protein: 95}, goals)
	if eval["protein"].Status != "good" {
		t.Errorf("protein status = %s, want good", eval["protein"].Status)
	}
	if eval["calories"].Status != "neutral" {
		t.Errorf("calories without goal should be neutral, got %s", eval["calories"].Status)
	}

	eval = svc.EvaluateGoals(MacroTotals{Protein: 95}, nil)
	for macro, ev := range eval {
		if ev.Status != "neutral" {
			t.Errorf("%s should be neutral with no goals row, got %s", macro, ev.Status)
		}
	}
}

func TestValidateWeight(t *testing.T) {
	for _, kg := range []float64{0, -1, 500.1, 1000} {
		if err := ValidateWeight(kg); err == nil {
			t.Errorf("expected validation error for %v kg", kg)
		}
	}
	for _, kg := range []float64{0.1, 72.5, 500} {
		if err := ValidateWeight(kg); err != nil {
			t.Errorf("unexpected error for %v kg: %v", kg, err)
		}
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

var errForced = errors.New("forced")

// fakeStore is an in-memory Store for service tests. Set failOn to an
// op name ("create meal", …) to make that op fail, for exercising the
// stop-at-first-failure contract.
type fakeStore struct {
	plans     map[string]*models.DietPlan
	templates map[string]*models.Template
	goals     map[string]*models.MacroGoals

	createdMeals   []models.Meal
	createdEntries []models.MealEntry
	createdOptions []models.MealSubstitutionOption
	createdSubs    []models.FoodSubstitution
	deletedSubs    []string
	deletedOptions []string
	deletedEntries []string

	mealsDeletedForPlan []string
	subsDeletedForPlan  []string

	failOn string
	calls  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans:     make(map[string]*models.DietPlan),
		templates: make(map[string]*models.Template),
		goals:     make(map[string]*models.MacroGoals),
	}
}

func (f *fakeStore) op(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return fmt.Errorf("forced failure on %s", name)
	}
	return nil
}

func (f *fakeStore) GetPlan(id string) (*models.DietPlan, error) {
	if err := f.op("get plan"); err != nil {
		return nil, err
	}
	p, ok := f.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) CreatePlan(p *models.DietPlan) (string, error) {
	if err := f.op("create plan"); err != nil {
		return "", err
	}
	p.ID = models.NewID()
	f.plans[p.ID] = p
	return p.ID, nil
}

func (f *fakeStore) UpdatePlan(p *models.DietPlan) error {
	if err := rejectTempID("plan", p.ID); err != nil {
		return err
	}
	if err := f.op("update plan"); err != nil {
		return err
	}
	f.plans[p.ID] = p
	return nil
}

func (f *fakeStore) CreateMeal(m *models.Meal) (string, error) {
	if err := f.op("create meal"); err != nil {
		return "", err
	}
	m.ID = models.NewID()
	f.createdMeals = append(f.createdMeals, *m)
	return m.ID, nil
}

func (f *fakeStore) UpdateMeal(m *models.Meal) error {
	if err := rejectTempID("meal", m.ID); err != nil {
		return err
	}
	return f.op("update meal")
}

func (f *fakeStore) DeleteMeal(id string) error {
	if err := rejectTempID("meal", id); err != nil {
		return err
	}
	return f.op("delete meal")
}

func (f *fakeStore) CreateEntry(e *models.MealEntry) (string, error) {
	if err := f.op("create entry"); err != nil {
		return "", err
	}
	e.ID = models.NewID()
	f.createdEntries = append(f.createdEntries, *e)
	return e.ID, nil
}

func (f *fakeStore) UpdateEntry(e *models.MealEntry) error {
	if err := rejectTempID("entry", e.ID); err != nil {
		return err
	}
	return f.op("update entry")
}

func (f *fakeStore) DeleteEntry(id string) error {
	if err := rejectTempID("entry", id); err != nil {
		return err
	}
	if err := f.op("delete entry"); err != nil {
		return err
	}
	f.deletedEntries = append(f.deletedEntries, id)
	return nil
}

func (f *fakeStore) CreateOption(o *models.MealSubstitutionOption) (string, error) {
	if err := f.op("create option"); err != nil {
		return "", err
	}
	o.ID = models.NewID()
	f.createdOptions = append(f.createdOptions, *o)
	return o.ID, nil
}

func (f *fakeStore) DeleteOption(id string) error {
	if err := rejectTempID("option", id); err != nil {
		return err
	}
	if err := f.op("delete option"); err != nil {
		return err
	}
	f.deletedOptions = append(f.deletedOptions, id)
	return nil
}

func (f *fakeStore) CreateSubstitution(s *models.FoodSubstitution) (string, error) {
	if err := f.op("create substitution"); err != nil {
		return "", err
	}
	s.ID = models.NewID()
	f.createdSubs = append(f.createdSubs, *s)
	return s.ID, nil
}

func (f *fakeStore) DeleteSubstitution(id string) error {
	if err := rejectTempID("substitution", id); err != nil {
		return err
	}
	if err := f.op("delete substitution"); err != nil {
		return err
	}
	f.deletedSubs = append(f.deletedSubs, id)
	return nil
}

func (f *fakeStore) DeleteMealsForPlan(planID string) error {
	if err := f.op("delete meals for plan"); err != nil {
		return err
	}
	f.mealsDeletedForPlan = append(f.mealsDeletedForPlan, planID)
	return nil
}

func (f *fakeStore) DeleteSubstitutionsForPlan(planID string) error {
	if err := f.op("delete substitutions for plan"); err != nil {
		return err
	}
	f.subsDeletedForPlan = append(f.subsDeletedForPlan, planID)
	return nil
}

func (f *fakeStore) GetTemplate(id string) (*models.Template, error) {
	if err := f.op("get template"); err != nil {
		return nil, err
	}
	tpl, ok := f.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return tpl, nil
}

func (f *fakeStore) ListTemplates() ([]models.Template, error) {
	var out []models.Template
	for _, t := range f.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeStore) GetGoals(clientID string) (*models.MacroGoals, error) {
	g, ok := f.goals[clientID]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (f *fakeStore) UpsertGoals(g *models.MacroGoals) error {
	f.goals[g.ClientID] = g
	return nil
}

// fakeCatalog serves a fixed food list.
type fakeCatalog struct {
	foods []models.FoodItem
	err   error
}

func (f *fakeCatalog) FindByNameSubstring(query string, limit int) ([]models.FoodItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	q := NormalizeName(query)
	var out []models.FoodItem
	for _, food := range f.foods {
		if strings.Contains(NormalizeName(food.Name), q) {
			out = append(out, food)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetNutrientProfile(foodID string) (models.NutrientProfile, error) {
	if f.err != nil {
		return models.NutrientProfile{}, f.err
	}
	for _, food := range f.foods {
		if food.ID == foodID {
			return food.Profile(), nil
		}
	}
	return models.NutrientProfile{}, ErrNotFound
}

func (f *fakeCatalog) GetUnitMetadata(foodID string) (*models.UnitMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, food := range f.foods {
		if food.ID == foodID {
			return food.Units(), nil
		}
	}
	return nil, ErrNotFound
}

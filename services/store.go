package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CruzAprc/nutri-testes-wl-sub001/config"
	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

// Store is the durable CRUD collaborator the composition engine talks
// to. Inserts return the generated identity. Temporary ids (tmp-
// prefix) must never be sent as an update or delete target; every
// implementation rejects them before touching the store.
type Store interface {
	GetPlan(id string) (*models.DietPlan, error)
	CreatePlan(p *models.DietPlan) (string, error)
	UpdatePlan(p *models.DietPlan) error

	CreateMeal(m *models.Meal) (string, error)
	UpdateMeal(m *models.Meal) error
	DeleteMeal(id string) error

	CreateEntry(e *models.MealEntry) (string, error)
	UpdateEntry(e *models.MealEntry) error
	DeleteEntry(id string) error

	CreateOption(o *models.MealSubstitutionOption) (string, error)
	DeleteOption(id string) error

	CreateSubstitution(s *models.FoodSubstitution) (string, error)
	DeleteSubstitution(id string) error

	// Bulk cascades used ahead of template materialization.
	DeleteMealsForPlan(planID string) error
	DeleteSubstitutionsForPlan(planID string) error

	GetTemplate(id string) (*models.Template, error)
	ListTemplates() ([]models.Template, error)

	GetGoals(clientID string) (*models.MacroGoals, error)
	UpsertGoals(g *models.MacroGoals) error
}

func rejectTempID(kind, id string) error {
	if models.IsTempID(id) {
		return &ValidationError{Field: kind, Message: fmt.Sprintf("temporary id %s cannot target the store", id)}
	}
	return nil
}

// GormStore is the Postgres-backed Store over the shared config.DB.
type GormStore struct{}

func NewGormStore() *GormStore { return &GormStore{} }

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) GetPlan(id string) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := config.DB.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Meals.Entries", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Meals.Options.Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Substitutions").
		First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &plan, nil
}

func (s *GormStore) CreatePlan(p *models.DietPlan) (string, error) {
	p.ID = models.NewID()
	if err := config.DB.Omit("Meals", "Substitutions").Create(p).Error; err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *GormStore) UpdatePlan(p *models.DietPlan) error {
	if err := rejectTempID("plan", p.ID); err != nil {
		return err
	}
	return config.DB.Omit("Meals", "Substitutions").Save(p).Error
}

func (s *GormStore) CreateMeal(m *models.Meal) (string, error) {
	m.ID = models.NewID()
	if err := config.DB.Omit("Entries", "Options").Create(m).Error; err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *GormStore) UpdateMeal(m *models.Meal) error {
	if err := rejectTempID("meal", m.ID); err != nil {
		return err
	}
	return config.DB.Omit("Entries", "Options").Save(m).Error
}

func (s *GormStore) DeleteMeal(id string) error {
	if err := rejectTempID("meal", id); err != nil {
		return err
	}
	if err := config.DB.Where("meal_id = ?", id).Delete(&models.MealEntry{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(&models.Meal{}, "id = ?", id).Error
}

func (s *GormStore) CreateEntry(e *models.MealEntry) (string, error) {
	e.ID = models.NewID()
	if err := config.DB.Create(e).Error; err != nil {
		return "", err
	}
	return e.ID, nil
}

func (s *GormStore) UpdateEntry(e *models.MealEntry) error {
	if err := rejectTempID("entry", e.ID); err != nil {
		return err
	}
	return config.DB.Save(e).Error
}

func (s *GormStore) DeleteEntry(id string) error {
	if err := rejectTempID("entry", id); err != nil {
		return err
	}
	return config.DB.Delete(&models.MealEntry{}, "id = ?", id).Error
}

func (s *GormStore) CreateOption(o *models.MealSubstitutionOption) (string, error) {
	o.ID = models.NewID()
	for i := range o.Items {
		o.Items[i].ID = models.NewID()
		o.Items[i].OptionID = o.ID
	}
	if err := config.DB.Create(o).Error; err != nil {
		return "", err
	}
	return o.ID, nil
}

func (s *GormStore) DeleteOption(id string) error {
	if err := rejectTempID("option", id); err != nil {
		return err
	}
	if err := config.DB.Where("option_id = ?", id).Delete(&models.OptionItem{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(&models.MealSubstitutionOption{}, "id = ?", id).Error
}

func (s *GormStore) CreateSubstitution(sub *models.FoodSubstitution) (string, error) {
	sub.ID = models.NewID()
	if err := config.DB.Create(sub).Error; err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (s *GormStore) DeleteSubstitution(id string) error {
	if err := rejectTempID("substitution", id); err != nil {
		return err
	}
	return config.DB.Delete(&models.FoodSubstitution{}, "id = ?", id).Error
}

func (s *GormStore) DeleteMealsForPlan(planID string) error {
	var mealIDs []string
	if err := config.DB.Model(&models.Meal{}).Where("plan_id = ?", planID).Pluck("id", &mealIDs).Error; err != nil {
		return err
	}
	if len(mealIDs) > 0 {
		if err := config.DB.Where("meal_id IN ?", mealIDs).Delete(&models.MealEntry{}).Error; err != nil {
			return err
		}
		var optionIDs []string
		if err := config.DB.Model(&models.MealSubstitutionOption{}).Where("meal_id IN ?", mealIDs).Pluck("id", &optionIDs).Error; err != nil {
			return err
		}
		if len(optionIDs) > 0 {
			if err := config.DB.Where("option_id IN ?", optionIDs).Delete(&models.OptionItem{}).Error; err != nil {
				return err
			}
		}
		if err := config.DB.Where("meal_id IN ?", mealIDs).Delete(&models.MealSubstitutionOption{}).Error; err != nil {
			return err
		}
	}
	return config.DB.Where("plan_id = ?", planID).Delete(&models.Meal{}).Error
}

func (s *GormStore) DeleteSubstitutionsForPlan(planID string) error {
	return config.DB.Where("plan_id = ?", planID).Delete(&models.FoodSubstitution{}).Error
}

func (s *GormStore) GetTemplate(id string) (*models.Template, error) {
	var tpl models.Template
	err := config.DB.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Substitutions").
		First(&tpl, "id = ?", id).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &tpl, nil
}

func (s *GormStore) ListTemplates() ([]models.Template, error) {
	var tpls []models.Template
	err := config.DB.Order("name").Find(&tpls).Error
	return tpls, err
}

func (s *GormStore) GetGoals(clientID string) (*models.MacroGoals, error) {
	var g models.MacroGoals
	err := config.DB.First(&g, "client_id = ?", clientID).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &g, nil
}

func (s *GormStore) UpsertGoals(g *models.MacroGoals) error {
	var existing models.MacroGoals
	err := config.DB.First(&existing, "client_id = ?", g.ClientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		g.ID = models.NewID()
		return config.DB.Create(g).Error
	}
	if err != nil {
		return err
	}
	g.ID = existing.ID
	g.CreatedAt = existing.CreatedAt
	return config.DB.Save(g).Error
}

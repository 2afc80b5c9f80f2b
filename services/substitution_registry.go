package services

import (
	"fmt"
	"strings"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

type subState int

const (
	subNew     subState = iota // added this session, not yet durable
	subSaved                   // exists in the store
	subDeleted                 // durable, flagged for delete on next save
)

type registeredSub struct {
	sub   models.FoodSubstitution
	state subState
}

// SubstitutionRegistry manages a plan's food-level substitutions in
// memory between save cycles. A "new" entry that is removed is purged
// outright and never reaches the store; a durable entry that is
// removed keeps a deletion flag until the save cycle issues the actual
// delete.
type SubstitutionRegistry struct {
	entries []registeredSub
}

// NewSubstitutionRegistry seeds the registry with the plan's durable
// substitutions.
func NewSubstitutionRegistry(existing []models.FoodSubstitution) *SubstitutionRegistry {
	r := &SubstitutionRegistry{}
	for _, s := range existing {
		r.entries = append(r.entries, registeredSub{sub: s, state: subSaved})
	}
	return r
}

// Add appends a not-yet-durable substitution under a temporary id.
func (r *SubstitutionRegistry) Add(planID, originalName, substituteName string, quantity float64) (models.FoodSubstitution, error) {
	if strings.TrimSpace(originalName) == "" {
		return models.FoodSubstitution{}, &ValidationError{Field: "original_food_name", Message: "required"}
	}
	if strings.TrimSpace(substituteName) == "" {
		return models.FoodSubstitution{}, &ValidationError{Field: "substitute_food_name", Message: "required"}
	}
	if quantity <= 0 {
		return models.FoodSubstitution{}, &ValidationError{Field: "substitute_quantity", Message: "must be positive"}
	}
	sub := models.FoodSubstitution{
		PlanID:             planID,
		OriginalFoodName:   originalName,
		SubstituteFoodName: substituteName,
		SubstituteQuantity: quantity,
	}
	sub.ID = models.NewTempID()
	r.entries = append(r.entries, registeredSub{sub: sub, state: subNew})
	return sub, nil
}

// Remove is idempotent: an id not present in the current list is a
// no-op, since the caller may race duplicate click events.
func (r *SubstitutionRegistry) Remove(id string) {
	for i, e := range r.entries {
		if e.sub.ID != id {
			continue
		}
		if e.state == subNew {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
		} else {
			r.entries[i].state = subDeleted
		}
		return
	}
}

// ListFor returns all non-deleted substitutions whose original food
// name matches case-insensitively.
func (r *SubstitutionRegistry) ListFor(originalName string) []models.FoodSubstitution {
	out := []models.FoodSubstitution{}
	for _, e := range r.entries {
		if e.state == subDeleted {
			continue
		}
		if strings.EqualFold(e.sub.OriginalFoodName, originalName) {
			out = append(out, e.sub)
		}
	}
	return out
}

// All returns every non-deleted substitution in insertion order.
func (r *SubstitutionRegistry) All() []models.FoodSubstitution {
	out := []models.FoodSubstitution{}
	for _, e := range r.entries {
		if e.state != subDeleted {
			out = append(out, e.sub)
		}
	}
	return out
}

// PendingAdds returns the substitutions the next save cycle must
// insert.
func (r *SubstitutionRegistry) PendingAdds() []models.FoodSubstitution {
	var out []models.FoodSubstitution
	for _, e := range r.entries {
		if e.state == subNew {
			out = append(out, e.sub)
		}
	}
	return out
}

// PendingDeletes returns the durable ids the next save cycle must
// delete.
func (r *SubstitutionRegistry) PendingDeletes() []string {
	var out []string
	for _, e := range r.entries {
		if e.state == subDeleted {
			out = append(out, e.sub.ID)
		}
	}
	return out
}

// CommitAdd promotes a new entry to saved under its store-assigned id.
func (r *SubstitutionRegistry) CommitAdd(tempID, durableID string) {
	for i, e := range r.entries {
		if e.sub.ID == tempID && e.state == subNew {
			r.entries[i].sub.ID = durableID
			r.entries[i].state = subSaved
			return
		}
	}
}

// CommitDelete purges an entry whose store delete has been issued.
func (r *SubstitutionRegistry) CommitDelete(id string) {
	for i, e := range r.entries {
		if e.sub.ID == id && e.state == subDeleted {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// DefaultOptionName derives the auto-name for a new meal substitution
// option. The implicit primary meal counts as option 1, so a meal that
// already has n named options gets "Option n+2".
func DefaultOptionName(existingOptions int) string {
	return fmt.Sprintf("Option %d", existingOptions+2)
}

// AppendMealOption adds a whole named option to a meal. Options are
// the unit of change: there is no partial-field update.
func AppendMealOption(meal *models.Meal, option models.MealSubstitutionOption) {
	if option.Name == "" {
		option.Name = DefaultOptionName(len(meal.Options))
	}
	if option.ID == "" {
		option.ID = models.NewTempID()
	}
	meal.Options = append(meal.Options, option)
}

// ReplaceMealOption swaps an existing option by identity. Unknown ids
// report ErrNotFound. Replacing a durable option re-keys it under a
// temporary id and remembers the old row in ReplacesID, so the next
// save cycle persists the edit as delete-then-recreate.
func ReplaceMealOption(meal *models.Meal, option models.MealSubstitutionOption) error {
	for i, o := range meal.Options {
		if o.ID != option.ID {
			continue
		}
		if !models.IsTempID(o.ID) && o.ID != "" {
			option.ReplacesID = o.ID
			option.ID = models.NewTempID()
		}
		meal.Options[i] = option
		return nil
	}
	return fmt.Errorf("meal option %s: %w", option.ID, ErrNotFound)
}

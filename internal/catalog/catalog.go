// Package catalog holds the exercise catalog the generator draws from.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"alcyxob/workout-planner/internal/domain"
)

// ErrInvalidCatalog wraps every validation failure reported by New.
var ErrInvalidCatalog = errors.New("invalid exercise catalog")

// Catalog is an immutable set of exercise definitions. It is safe to share between goroutines:
// every accessor hands out copies, so callers can never modify the stored entries.
type Catalog struct {
	exercises []domain.Exercise
	byID      map[string]int
}

// New validates the given exercises and returns a catalog holding its own copy of them.
func New(exercises []domain.Exercise) (*Catalog, error) {
	c := &Catalog{
		exercises: make([]domain.Exercise, 0, len(exercises)),
		byID:      make(map[string]int, len(exercises)),
	}
	for i, ex := range exercises {
		if err := Validate(ex); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidCatalog, i, err)
		}
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, ex.ID)
		}
		c.byID[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex.Clone())
	}
	return c, nil
}

// Validate checks a single catalog entry.
func Validate(ex domain.Exercise) error {
	switch {
	case ex.ID == "":
		return errors.New("id is required")
	case ex.Name == "":
		return fmt.Errorf("%s: name is required", ex.ID)
	case !ex.Category.Valid():
		return fmt.Errorf("%s: unknown category %q", ex.ID, ex.Category)
	case !ex.Equipment.Valid():
		return fmt.Errorf("%s: unknown equipment class %q", ex.ID, ex.Equipment)
	case !ex.Difficulty.Valid():
		return fmt.Errorf("%s: unknown difficulty %q", ex.ID, ex.Difficulty)
	case ex.DurationSeconds < 0 || ex.Reps < 0 || ex.Sets < 0:
		return fmt.Errorf("%s: duration, reps and sets must not be negative", ex.ID)
	case ex.DurationSeconds == 0 && (ex.Reps == 0 || ex.Sets == 0):
		return fmt.Errorf("%s: either duration_seconds or reps and sets must be set", ex.ID)
	case len(ex.MuscleGroups) == 0:
		return fmt.Errorf("%s: at least one muscle group is required", ex.ID)
	}
	return nil
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// All returns a copy of every exercise in catalog order.
func (c *Catalog) All() []domain.Exercise {
	out := make([]domain.Exercise, len(c.exercises))
	for i, ex := range c.exercises {
		out[i] = ex.Clone()
	}
	return out
}

// ByID looks up a single exercise.
func (c *Catalog) ByID(id string) (domain.Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Exercise{}, false
	}
	return c.exercises[i].Clone(), true
}

// ByCategory returns copies of the exercises in the given category, in catalog order.
func (c *Catalog) ByCategory(cat domain.Category) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range c.exercises {
		if ex.Category == cat {
			out = append(out, ex.Clone())
		}
	}
	return out
}

// Query narrows the catalog for listing. Empty fields match everything.
type Query struct {
	Category   domain.Category
	Difficulty domain.Difficulty
	Equipment  domain.EquipmentTier
}

// Find returns the exercises matching q, sorted by category then name.
func (c *Catalog) Find(q Query) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range c.exercises {
		if q.Category != "" && ex.Category != q.Category {
			continue
		}
		if q.Difficulty != "" && ex.Difficulty != q.Difficulty {
			continue
		}
		if q.Equipment != "" && ex.Equipment != q.Equipment {
			continue
		}
		out = append(out, ex.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
)

// fixedNow is a Wednesday; its Monday-starting week runs 2026-10-12 to 2026-10-18.
var fixedNow = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ex(id string, cat domain.Category, equip domain.EquipmentTier, diff domain.Difficulty, seconds int, muscles ...string) domain.Exercise {
	if len(muscles) == 0 {
		muscles = []string{domain.MuscleCore}
	}
	return domain.Exercise{
		ID:              id,
		Name:            id,
		Category:        cat,
		Equipment:       equip,
		Difficulty:      diff,
		DurationSeconds: seconds,
		MuscleGroups:    muscles,
	}
}

func newCatalog(t *testing.T, exercises ...domain.Exercise) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(exercises)
	require.NoError(t, err)
	return c
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func ids(exercises []domain.Exercise) []string {
	out := make([]string, len(exercises))
	for i, e := range exercises {
		out[i] = e.ID
	}
	return out
}

func planIDs(exercises []domain.PlanExercise) []string {
	out := make([]string, len(exercises))
	for i, e := range exercises {
		out[i] = e.ID
	}
	return out
}

func mainSeconds(p domain.WorkoutPlan) int {
	total := 0
	for _, pe := range p.MainExercises() {
		total += pe.TotalSeconds()
	}
	return total
}

package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/workout-planner/internal/domain"
)

func validExercise(id string) domain.Exercise {
	return domain.Exercise{
		ID:           id,
		Name:         "Exercise " + id,
		Category:     domain.CategoryCore,
		Equipment:    domain.EquipmentNone,
		Difficulty:   domain.DifficultyBeginner,
		Reps:         10,
		Sets:         3,
		MuscleGroups: []string{domain.MuscleCore},
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 60)

	noEquipmentStretches := 0
	for _, ex := range c.ByCategory(domain.CategoryFlexibility) {
		if ex.Equipment == domain.EquipmentNone {
			noEquipmentStretches++
		}
	}
	assert.GreaterOrEqual(t, noEquipmentStretches, 4)

	for _, cat := range domain.AllCategories {
		assert.NotEmpty(t, c.ByCategory(cat), "category %s", cat)
	}

	swing, ok := c.ByID("kettlebell-swings")
	require.True(t, ok)
	assert.Equal(t, domain.EquipmentBasic, swing.Equipment)
	assert.Equal(t, 15*4*domain.SecondsPerRep, swing.WorkSeconds())
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Exercise)
	}{
		{"missing id", func(e *domain.Exercise) { e.ID = "" }},
		{"missing name", func(e *domain.Exercise) { e.Name = "" }},
		{"unknown category", func(e *domain.Exercise) { e.Category = "yoga" }},
		{"unknown equipment", func(e *domain.Exercise) { e.Equipment = "home" }},
		{"unknown difficulty", func(e *domain.Exercise) { e.Difficulty = "expert" }},
		{"no work", func(e *domain.Exercise) { e.Reps, e.Sets = 0, 0 }},
		{"reps without sets", func(e *domain.Exercise) { e.Sets = 0 }},
		{"negative duration", func(e *domain.Exercise) { e.DurationSeconds = -5 }},
		{"no muscle groups", func(e *domain.Exercise) { e.MuscleGroups = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise("a")
			tt.mutate(&ex)
			_, err := New([]domain.Exercise{ex})
			require.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]domain.Exercise{validExercise("a"), validExercise("a")})
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), `duplicate id "a"`)
}

func TestCatalogIsolatedFromCallers(t *testing.T) {
	src := []domain.Exercise{validExercise("a"), validExercise("b")}
	c, err := New(src)
	require.NoError(t, err)

	src[0].Name = "changed"
	src[0].MuscleGroups[0] = "changed"

	all := c.All()
	all[1].MuscleGroups[0] = "changed"

	got, ok := c.ByID("a")
	require.True(t, ok)
	if diff := cmp.Diff(validExercise("a"), got); diff != "" {
		t.Errorf("catalog entry changed (-want +got):\n%s", diff)
	}
	got, _ = c.ByID("b")
	assert.Equal(t, []string{domain.MuscleCore}, got.MuscleGroups)

	_, ok = c.ByID("missing")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	a := validExercise("a")
	a.Name = "Zebra Crawl"
	b := validExercise("b")
	b.Name = "Alpha Plank"
	c := validExercise("c")
	c.Category = domain.CategoryCardio
	c.Difficulty = domain.DifficultyAdvanced

	cat, err := New([]domain.Exercise{a, b, c})
	require.NoError(t, err)

	all := cat.Find(Query{})
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	core := cat.Find(Query{Category: domain.CategoryCore})
	assert.Len(t, core, 2)

	adv := cat.Find(Query{Difficulty: domain.DifficultyAdvanced})
	require.Len(t, adv, 1)
	assert.Equal(t, "c", adv[0].ID)

	assert.Empty(t, cat.Find(Query{Equipment: domain.EquipmentGym}))
}

func TestLoad(t *testing.T) {
	doc := `
exercises:
  - id: plank
    name: Plank
    category: core
    equipment: none
    difficulty: beginner
    duration_seconds: 45
    muscle_groups: [core]
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	plank, _ := c.ByID("plank")
	assert.Equal(t, 45, plank.DurationSeconds)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := `
exercises:
  - id: plank
    name: Plank
    catgory: core
`
	_, err := Load(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoadEmptyDocument(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	require.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestMarshalRoundTripsThroughFile(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Marshal(&buf, def.All()))

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(def.All(), loaded.All()); diff != "" {
		t.Errorf("catalog changed after write and reload (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

type stubLister struct {
	exercises []domain.Exercise
	err       error
}

func (s stubLister) List(context.Context) ([]domain.Exercise, error) { return s.exercises, s.err }

func TestFromLister(t *testing.T) {
	c, err := FromLister(context.Background(), stubLister{exercises: []domain.Exercise{validExercise("a")}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = FromLister(context.Background(), stubLister{})
	require.ErrorIs(t, err, ErrInvalidCatalog)

	boom := errors.New("boom")
	_, err = FromLister(context.Background(), stubLister{err: boom})
	require.ErrorIs(t, err, boom)
}

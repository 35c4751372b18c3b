package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/export"
	"alcyxob/workout-planner/internal/logging"
)

func TestListExercises(t *testing.T) {
	f := newFixture(t)

	all := f.catalog.ListExercises(context.Background(), catalog.Query{})
	assert.Equal(t, catalog.MustDefault().Len(), len(all))

	cardio := f.catalog.ListExercises(context.Background(), catalog.Query{Category: domain.CategoryCardio})
	require.NotEmpty(t, cardio)
	for _, ex := range cardio {
		assert.Equal(t, domain.CategoryCardio, ex.Category)
	}
}

func TestReseed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.exercises.ReplaceAll(ctx, []domain.Exercise{{ID: "stale", Name: "Stale"}}))

	n, err := f.catalog.Reseed(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.MustDefault().Len(), n)

	count, err := f.exercises.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)

	// the stored copy round-trips into a catalog the generator accepts
	reloaded, err := catalog.FromLister(ctx, f.exercises)
	require.NoError(t, err)
	assert.Equal(t, n, reloaded.Len())

	readOnly := NewCatalogService(f.engine, nil, logging.Discard())
	_, err = readOnly.Reseed(ctx)
	assert.ErrorIs(t, err, ErrCatalogReadOnly)
}

func TestEngineSwap(t *testing.T) {
	small, err := catalog.New([]domain.Exercise{{
		ID: "only", Name: "Only Push-ups", Category: domain.CategoryChest, Equipment: domain.EquipmentNone,
		Difficulty: domain.DifficultyBeginner, Reps: 10, Sets: 3, MuscleGroups: []string{"chest"},
	}})
	require.NoError(t, err)

	e := NewEngine(catalog.MustDefault())
	before := e.Generator()
	e.SetCatalog(small)
	assert.NotSame(t, before, e.Generator())
	assert.Equal(t, 1, e.Generator().Catalog().Len())
}

func TestExportWorkbook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "export@example.com")
	plan, err := f.workouts.Generate(ctx, u.ID, GenerateInput{Mode: "weekly"})
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := f.exports.WriteWorkbook(ctx, u.ID, plan.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, export.FileName(plan), name)

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()
	assert.Len(t, wb.GetSheetList(), 1+len(plan.WeeklyWorkouts))

	_, err = f.exports.WriteWorkbook(ctx, u.ID, primitive.NewObjectID(), &buf)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestExportUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "upload@example.com")
	plan, err := f.workouts.Generate(ctx, u.ID, GenerateInput{})
	require.NoError(t, err)

	url, key, err := f.exports.Upload(ctx, u.ID, plan.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "method=GET")
	assert.Contains(t, key, "exports/"+u.ID.Hex()+"/")

	obj, ok := f.files.Get(key)
	require.True(t, ok)
	assert.Equal(t, export.ContentType, obj.ContentType)
	assert.NotEmpty(t, obj.Data)

	disabled := NewExportService(f.workouts, nil, logging.Discard())
	_, _, err = disabled.Upload(ctx, u.ID, plan.ID)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

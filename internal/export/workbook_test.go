package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alcyxob/workout-planner/internal/domain"
)

func planExercise(name string, mods ...func(*domain.PlanExercise)) domain.PlanExercise {
	pe := domain.PlanExercise{
		Exercise: domain.Exercise{
			ID:           name,
			Name:         name,
			Category:     domain.CategoryChest,
			Equipment:    domain.EquipmentNone,
			Difficulty:   domain.DifficultyBeginner,
			Reps:         10,
			Sets:         3,
			MuscleGroups: []string{"chest", "triceps"},
		},
		RestSeconds: 60,
	}
	for _, m := range mods {
		m(&pe)
	}
	return pe
}

func singlePlan() *domain.WorkoutPlan {
	return &domain.WorkoutPlan{
		Name:            "Beginner Upper Body Workout",
		Difficulty:      domain.DifficultyBeginner,
		EquipmentTier:   domain.EquipmentNone,
		Mode:            domain.PlanModeSingle,
		TargetMinutes:   30,
		DurationMinutes: 28,
		Exercises: []domain.PlanExercise{
			planExercise("Arm Circles", func(p *domain.PlanExercise) {
				p.Category = domain.CategoryFlexibility
				p.Reps, p.Sets = 0, 0
				p.DurationSeconds = 60
				p.IsWarmup = true
			}),
			planExercise("Push-ups"),
			planExercise("Dumbbell Rows", func(p *domain.PlanExercise) {
				p.Equipment = domain.EquipmentBasic
				p.EquipmentRequired = "Dumbbells"
			}),
			planExercise("Child's Pose", func(p *domain.PlanExercise) {
				p.Category = domain.CategoryFlexibility
				p.Reps, p.Sets = 0, 0
				p.DurationSeconds = 45
				p.IsCooldown = true
			}),
		},
	}
}

func reopen(t *testing.T, plan *domain.WorkoutPlan) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plan))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWriteSinglePlan(t *testing.T) {
	f := reopen(t, singlePlan())

	assert.Equal(t, []string{SheetWorkout}, f.GetSheetList())
	rows, err := f.GetRows(SheetWorkout)
	require.NoError(t, err)

	assert.Equal(t, "Beginner Upper Body Workout", rows[0][0])
	assert.Equal(t, "#", rows[headerRow-1][0])
	assert.Equal(t, "Muscle groups", rows[headerRow-1][7])

	data := rows[headerRow:]
	require.Len(t, data, 4)
	assert.Equal(t, []string{"1", "Warm-up", "Arm Circles", "flexibility", "1 min", "60", "", "chest, triceps"}, data[0])
	assert.Equal(t, "Main", data[1][1])
	assert.Equal(t, "3 x 10", data[1][4])
	assert.Equal(t, "Dumbbells", data[2][6])
	assert.Equal(t, "Cool-down", data[3][1])
	assert.Equal(t, "45 s", data[3][4])
}

func TestWriteWeeklyPlan(t *testing.T) {
	mon := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	wed := mon.AddDate(0, 0, 2)
	day := func(name string, d time.Time, focus domain.FocusArea) domain.WorkoutPlan {
		p := *singlePlan()
		p.Name = name
		p.DayOfWeek = d.Weekday().String()
		p.ScheduledDate = &d
		p.Focus = focus
		return p
	}
	plan := &domain.WorkoutPlan{
		Name:           "Weekly beginner plan: 2 sessions",
		Mode:           domain.PlanModeWeekly,
		WeeklyWorkouts: []domain.WorkoutPlan{day("Monday: Upper Body", mon, domain.FocusUpperBody), day("Wednesday: Core", wed, domain.FocusCore)},
		RestDays:       []string{"Tuesday", "Thursday"},
	}

	f := reopen(t, plan)
	assert.Equal(t, []string{SheetOverview, "Monday", "Wednesday"}, f.GetSheetList())

	rows, err := f.GetRows(SheetOverview)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "2026-10-12", "Monday: Upper Body", "upper-body", "28", "4"}, rows[headerRow])
	assert.Equal(t, "Wednesday", rows[headerRow+1][0])
	assert.Equal(t, "Rest days: Tuesday, Thursday", rows[len(rows)-1][0])

	dayRows, err := f.GetRows("Wednesday")
	require.NoError(t, err)
	assert.Equal(t, "Wednesday: Core", dayRows[0][0])
	assert.Len(t, dayRows[headerRow:], 4)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "beginner-upper-body-workout.xlsx", FileName(&domain.WorkoutPlan{Name: "Beginner Upper Body Workout"}))
	assert.Equal(t, "weekly-advanced-plan-4-sessions.xlsx", FileName(&domain.WorkoutPlan{Name: "Weekly advanced plan: 4 sessions"}))
	assert.Equal(t, "workout.xlsx", FileName(&domain.WorkoutPlan{Name: "!!"}))
}

func TestVolume(t *testing.T) {
	assert.Equal(t, "2 min", Volume(domain.Exercise{DurationSeconds: 120}))
	assert.Equal(t, "30 s", Volume(domain.Exercise{DurationSeconds: 30}))
	assert.Equal(t, "4 x 15", Volume(domain.Exercise{Sets: 4, Reps: 15}))
}

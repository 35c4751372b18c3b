package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/export"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerateJSONSingle(t *testing.T) {
	out, _, err := execute(t, "generate", "--format", "json", "--seed", "11", "--duration", "40", "--difficulty", "intermediate")
	require.NoError(t, err)

	var plan domain.WorkoutPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, domain.PlanModeSingle, plan.Mode)
	assert.Equal(t, domain.DifficultyIntermediate, plan.Difficulty)
	assert.Equal(t, 40, plan.TargetMinutes)
	assert.NotEmpty(t, plan.Exercises)
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	first, _, err := execute(t, "generate", "--format", "json", "--seed", "5")
	require.NoError(t, err)
	second, _, err := execute(t, "generate", "--format", "json", "--seed", "5")
	require.NoError(t, err)

	var a, b domain.WorkoutPlan
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a.Exercises, b.Exercises)
}

func TestGenerateWeeklyText(t *testing.T) {
	out, _, err := execute(t, "generate", "--mode", "weekly", "--days", "mon,thu", "--seed", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "== Monday:")
	assert.Contains(t, out, "== Thursday:")
	assert.Contains(t, out, "[warm-up]")
	assert.Contains(t, out, "[cool-down]")
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, _, err := execute(t, "generate", "--difficulty", "elite")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, _, err = execute(t, "generate", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = execute(t, "generate", "--mode", "weekly", "--days", "someday")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestGenerateWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.xlsx")
	_, stderr, err := execute(t, "generate", "--mode", "weekly", "--frequency", "3", "--format", "xlsx", "--out", path, "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, stderr, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetOverview, "Monday", "Wednesday", "Friday"}, f.GetSheetList())
}

func TestGenerateWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	out, _, err := execute(t, "generate", "--format", "json", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestCatalogValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`exercises:
  - id: push-ups
    name: Push-ups
    category: chest
    equipment: none
    difficulty: beginner
    sets: 3
    reps: 10
    muscle_groups: [chest, triceps]
`), 0o644))

	out, _, err := execute(t, "catalog", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "1 exercises")
	assert.Contains(t, out, "chest")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("exercises:\n  - id: x\n    nme: typo\n"), 0o644))
	_, _, err = execute(t, "catalog", "validate", bad)
	assert.Error(t, err)

	_, _, err = execute(t, "catalog", "validate")
	assert.Error(t, err)
}

func TestCatalogList(t *testing.T) {
	out, _, err := execute(t, "catalog", "list", "--category", "flexibility")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	for _, line := range lines[1:] {
		assert.Contains(t, line, "flexibility")
	}

	_, _, err = execute(t, "catalog", "list", "--equipment", "kitchen")
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestCatalogDumpRoundTrips(t *testing.T) {
	out, _, err := execute(t, "catalog", "dump")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	_, _, err = execute(t, "catalog", "validate", path)
	assert.NoError(t, err)
}

// Package export renders workout plans as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"alcyxob/workout-planner/internal/domain"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SheetWorkout  = "Workout"
	SheetOverview = "Overview"

	// first row of the exercise table; rows above hold the title block
	headerRow = 4
)

var exerciseColumns = []struct {
	title string
	width float64
}{
	{"#", 5},
	{"Block", 10},
	{"Exercise", 32},
	{"Category", 12},
	{"Volume", 14},
	{"Rest (s)", 9},
	{"Equipment", 24},
	{"Muscle groups", 36},
}

type styles struct {
	title  int
	header int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return s, err
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return s, err
}

// Workbook builds a workbook with one sheet for a single plan, or an overview sheet plus one
// sheet per day for a weekly plan. The caller closes the file.
func Workbook(plan *domain.WorkoutPlan) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create styles: %w", err)
	}

	if !plan.IsContainer() {
		if err := f.SetSheetName("Sheet1", SheetWorkout); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSession(f, SheetWorkout, plan, st); err != nil {
			f.Close()
			return nil, err
		}
		return f, nil
	}

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeOverview(f, plan, st); err != nil {
		f.Close()
		return nil, err
	}
	for i := range plan.WeeklyWorkouts {
		day := &plan.WeeklyWorkouts[i]
		name := sheetName(day.DayOfWeek, i)
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeSession(f, name, day, st); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write renders the plan into w.
func Write(w io.Writer, plan *domain.WorkoutPlan) error {
	f, err := Workbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// FileName is a download name derived from the plan name.
func FileName(plan *domain.WorkoutPlan) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plan.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "workout"
	}
	return name + ".xlsx"
}

func sheetName(day string, i int) string {
	if day == "" {
		return fmt.Sprintf("Day %d", i+1)
	}
	return day
}

func writeTitle(f *excelize.File, sheet string, plan *domain.WorkoutPlan, st styles) error {
	if err := f.SetCellValue(sheet, "A1", plan.Name); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return err
	}
	summary := fmt.Sprintf("%s | %s | target %d min | planned %d min",
		plan.Difficulty, plan.EquipmentTier, plan.TargetMinutes, plan.DurationMinutes)
	if plan.ScheduledDate != nil {
		summary += " | " + plan.ScheduledDate.Format("2006-01-02")
	}
	if err := f.SetCellValue(sheet, "A2", summary); err != nil {
		return err
	}
	return f.SetCellValue(sheet, "A3", plan.Description)
}

func writeHeader(f *excelize.File, sheet string, titles []string, widths []float64, st styles) error {
	row := make([]interface{}, len(titles))
	for i, t := range titles {
		row[i] = t
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(titles), headerRow)
	if err := f.SetSheetRow(sheet, first, &row); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, st.header)
}

func writeSession(f *excelize.File, sheet string, plan *domain.WorkoutPlan, st styles) error {
	if err := writeTitle(f, sheet, plan, st); err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	titles := make([]string, len(exerciseColumns))
	widths := make([]float64, len(exerciseColumns))
	for i, c := range exerciseColumns {
		titles[i] = c.title
		widths[i] = c.width
	}
	if err := writeHeader(f, sheet, titles, widths, st); err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	for i, ex := range plan.Exercises {
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		row := []interface{}{
			i + 1,
			block(ex),
			ex.Name,
			string(ex.Category),
			Volume(ex.Exercise),
			ex.RestSeconds,
			equipment(ex),
			strings.Join(ex.MuscleGroups, ", "),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func writeOverview(f *excelize.File, plan *domain.WorkoutPlan, st styles) error {
	if err := writeTitle(f, SheetOverview, plan, st); err != nil {
		return err
	}
	titles := []string{"Day", "Date", "Session", "Focus", "Minutes", "Exercises"}
	widths := []float64{12, 12, 32, 14, 9, 10}
	if err := writeHeader(f, SheetOverview, titles, widths, st); err != nil {
		return err
	}
	for i, day := range plan.WeeklyWorkouts {
		date := ""
		if day.ScheduledDate != nil {
			date = day.ScheduledDate.Format("2006-01-02")
		}
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		row := []interface{}{day.DayOfWeek, date, day.Name, string(day.Focus), day.DurationMinutes, len(day.Exercises)}
		if err := f.SetSheetRow(SheetOverview, cell, &row); err != nil {
			return err
		}
	}
	restRow := headerRow + len(plan.WeeklyWorkouts) + 2
	cell, _ := excelize.CoordinatesToCellName(1, restRow)
	return f.SetCellValue(SheetOverview, cell, "Rest days: "+strings.Join(plan.RestDays, ", "))
}

func block(ex domain.PlanExercise) string {
	switch {
	case ex.IsWarmup:
		return "Warm-up"
	case ex.IsCooldown:
		return "Cool-down"
	default:
		return "Main"
	}
}

// Volume formats sets and reps, or the duration for timed exercises.
func Volume(ex domain.Exercise) string {
	if ex.DurationSeconds > 0 {
		if ex.DurationSeconds%60 == 0 {
			return fmt.Sprintf("%d min", ex.DurationSeconds/60)
		}
		return fmt.Sprintf("%d s", ex.DurationSeconds)
	}
	return fmt.Sprintf("%d x %d", ex.Sets, ex.Reps)
}

func equipment(ex domain.PlanExercise) string {
	switch {
	case ex.EquipmentRequired != "":
		return ex.EquipmentRequired
	case ex.EquipmentOptional != "":
		return ex.EquipmentOptional + " (optional)"
	default:
		return ""
	}
}

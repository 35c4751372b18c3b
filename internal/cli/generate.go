package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/export"
	"alcyxob/workout-planner/internal/generator"
	"alcyxob/workout-planner/internal/service"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatXLSX = "xlsx"
)

type generateOptions struct {
	duration   int
	difficulty string
	equipment  string
	owned      []string
	focus      []string
	mode       string
	frequency  int
	days       []string
	seed       uint64
	strict     bool
	catalog    string
	format     string
	out        string
}

func newGenerateCommand() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single or weekly workout plan",
		Example: `  plangen generate --duration 45 --difficulty intermediate --focus upper-body
  plangen generate --mode weekly --days mon,wed,fri --equipment basic --owned dumbbells
  plangen generate --mode weekly --frequency 4 --format xlsx --out week.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.duration, "duration", "d", generator.DefaultDurationMinutes, "Target session length in minutes")
	f.StringVar(&opts.difficulty, "difficulty", string(domain.DifficultyBeginner), "beginner, intermediate or advanced")
	f.StringVar(&opts.equipment, "equipment", string(domain.EquipmentNone), "Equipment tier: none, basic or gym")
	f.StringSliceVar(&opts.owned, "owned", nil, "Owned equipment for the basic tier, e.g. dumbbells,kettlebell")
	f.StringSliceVar(&opts.focus, "focus", nil, "Focus areas, e.g. upper-body,core")
	f.StringVar(&opts.mode, "mode", string(domain.PlanModeSingle), "single or weekly")
	f.IntVar(&opts.frequency, "frequency", generator.DefaultWeeklyFrequency, "Sessions per week in weekly mode")
	f.StringSliceVar(&opts.days, "days", nil, "Training days in weekly mode, e.g. mon,wed,fri")
	f.Uint64Var(&opts.seed, "seed", 0, "Random seed; 0 picks a fresh one")
	f.BoolVar(&opts.strict, "strict-basic", false, "Reject basic-tier exercises whose equipment is not recognised")
	f.StringVar(&opts.catalog, "catalog", "", "YAML catalog file (default: built-in catalog)")
	f.StringVarP(&opts.format, "format", "f", formatText, "Output format: json, text or xlsx")
	f.StringVarP(&opts.out, "out", "o", "", "Output file (default: stdout; xlsx defaults to a file named after the plan)")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	switch opts.format {
	case formatJSON, formatText, formatXLSX:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	req, err := service.BuildRequest(service.GenerateInput{
		DurationMinutes: opts.duration,
		Difficulty:      opts.difficulty,
		EquipmentTier:   opts.equipment,
		OwnedEquipment:  opts.owned,
		FocusAreas:      opts.focus,
		Mode:            opts.mode,
		Frequency:       opts.frequency,
		Days:            opts.days,
	}, domain.FitnessProfile{})
	if err != nil {
		return err
	}

	cat, err := loadCatalog(opts.catalog)
	if err != nil {
		return err
	}
	genOpts := []generator.Option{
		generator.WithPolicy(generator.Policy{AllowUnrecognizedBasic: !opts.strict}),
	}
	if opts.seed != 0 {
		genOpts = append(genOpts, generator.WithSeed(opts.seed))
	}
	plan := generator.New(cat, genOpts...).Generate(req, nil)

	if opts.format == formatXLSX {
		path := opts.out
		if path == "" {
			path = export.FileName(&plan)
		}
		if err := writeFile(path, func(w io.Writer) error { return export.Write(w, &plan) }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		return nil
	}

	render := func(w io.Writer) error {
		if opts.format == formatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		}
		return writePlanText(w, &plan)
	}
	if opts.out == "" {
		return render(cmd.OutOrStdout())
	}
	return writeFile(opts.out, render)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// writePlanText prints a plan the way it would be read aloud in a session.
func writePlanText(w io.Writer, plan *domain.WorkoutPlan) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", plan.Name, plan.Description)
	if plan.IsContainer() {
		for i := range plan.WeeklyWorkouts {
			day := &plan.WeeklyWorkouts[i]
			fmt.Fprintf(&b, "\n== %s (%d min) ==\n", day.Name, day.DurationMinutes)
			writeExercises(&b, day.Exercises)
		}
	} else {
		fmt.Fprintf(&b, "\nPlanned %d of %d minutes\n", plan.DurationMinutes, plan.TargetMinutes)
		writeExercises(&b, plan.Exercises)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeExercises(b *strings.Builder, exercises []domain.PlanExercise) {
	for i, ex := range exercises {
		tag := ""
		switch {
		case ex.IsWarmup:
			tag = " [warm-up]"
		case ex.IsCooldown:
			tag = " [cool-down]"
		}
		fmt.Fprintf(b, "%2d. %s%s: %s, rest %ds", i+1, ex.Name, tag, export.Volume(ex.Exercise), ex.RestSeconds)
		if ex.EquipmentRequired != "" {
			fmt.Fprintf(b, " (%s)", ex.EquipmentRequired)
		}
		b.WriteByte('\n')
	}
}

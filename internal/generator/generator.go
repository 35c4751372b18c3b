// Package generator builds workout plans from an exercise catalog.
//
// A single plan is assembled in four steps: the catalog is filtered by equipment, difficulty and
// focus; the pool is ordered (shuffle, then priority sort); the packer fills the main block within
// the time budget; and every selected exercise is annotated with rest time and equipment labels.
// Weekly plans run the same pipeline once per scheduled day.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
)

const (
	DefaultDurationMinutes = 30
	DefaultWeeklyFrequency = 3
)

// Request is one generation request. Zero values fall back to beginner, no equipment,
// single mode and DefaultDurationMinutes. Callers clamp the duration to the range they support.
type Request struct {
	DurationMinutes int
	FocusAreas      []domain.FocusArea
	Difficulty      domain.Difficulty
	EquipmentTier   domain.EquipmentTier
	OwnedEquipment  []string
	Mode            domain.PlanMode
	// Weekly mode only.
	Frequency int
	Weekdays  []time.Weekday
}

func (r Request) normalized() Request {
	if r.DurationMinutes <= 0 {
		r.DurationMinutes = DefaultDurationMinutes
	}
	if !r.Difficulty.Valid() {
		r.Difficulty = domain.DifficultyBeginner
	}
	if !r.EquipmentTier.Valid() {
		r.EquipmentTier = domain.EquipmentNone
	}
	if !r.Mode.Valid() {
		r.Mode = domain.PlanModeSingle
	}
	if r.Frequency == 0 {
		r.Frequency = DefaultWeeklyFrequency
	}
	return r
}

func (r Request) criteria(focus []domain.FocusArea) Criteria {
	return Criteria{
		Difficulty:     r.Difficulty,
		EquipmentTier:  r.EquipmentTier,
		OwnedEquipment: r.OwnedEquipment,
		FocusAreas:     focus,
	}
}

// Generator produces plans from one catalog. It keeps no per-request state and can be shared.
type Generator struct {
	catalog *catalog.Catalog
	policy  Policy
	clock   func() time.Time
	seed    uint64
	seeded  bool
	calls   atomic.Uint64
}

type Option func(*Generator)

// WithSeed makes every call start from the same random state, so identical requests produce
// identical plans.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithClock replaces time.Now, which decides the current week and the plan timestamps.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(g *Generator) { g.policy = p }
}

func New(cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog: cat,
		policy:  DefaultPolicy(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the catalog the generator draws from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

func (g *Generator) newRand() *rand.Rand {
	if g.seeded {
		return rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	}
	n := g.calls.Add(1)
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), n))
}

// Generate builds a plan for req. recent is the caller's plan history, oldest first; only its
// tail feeds the muscle-group balancer. Generate never fails: when the catalog cannot fill the
// budget the plan is simply shorter and its description says so.
func (g *Generator) Generate(req Request, recent []domain.WorkoutPlan) domain.WorkoutPlan {
	req = req.normalized()
	rng := g.newRand()
	now := g.clock()

	if req.Mode == domain.PlanModeWeekly {
		return g.weekly(req, rng, now)
	}
	plan := g.session(req, req.FocusAreas, UnderusedMuscleGroups(recent), rng)
	plan.Name = sessionName(req.Difficulty, req.FocusAreas)
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return plan
}

// session runs the single-workout pipeline.
func (g *Generator) session(req Request, focus []domain.FocusArea, underused map[string]bool, rng *rand.Rand) domain.WorkoutPlan {
	all := g.catalog.All()

	// Stretches ignore difficulty and focus but must still be doable with the user's equipment.
	var stretches []domain.Exercise
	for _, ex := range all {
		if ex.Category == domain.CategoryFlexibility && MatchesEquipment(ex, req.EquipmentTier, req.OwnedEquipment, g.policy) {
			stretches = append(stretches, ex)
		}
	}
	warmup, cooldown := pickStretches(stretches, rng)
	taken := make(map[string]bool, len(warmup)+len(cooldown))
	for _, ex := range warmup {
		taken[ex.ID] = true
	}
	for _, ex := range cooldown {
		taken[ex.ID] = true
	}

	var pool []domain.Exercise
	for _, ex := range FilterPool(all, req.criteria(focus), g.policy) {
		if !taken[ex.ID] {
			pool = append(pool, ex)
		}
	}
	ordered := orderCandidates(pool, req.Difficulty, underused, rng)
	packed := Pack(ordered, MainBudgetSeconds(req.DurationMinutes), func(ex domain.Exercise) int {
		return ex.WorkSeconds() + RestSeconds(ex.Category, req.Difficulty)
	})

	exercises := make([]domain.PlanExercise, 0, len(warmup)+len(packed.Selected)+len(cooldown))
	for _, ex := range warmup {
		pe := annotate(ex, req.Difficulty)
		pe.IsWarmup = true
		exercises = append(exercises, pe)
	}
	for _, ex := range packed.Selected {
		exercises = append(exercises, annotate(ex, req.Difficulty))
	}
	for _, ex := range cooldown {
		pe := annotate(ex, req.Difficulty)
		pe.IsCooldown = true
		exercises = append(exercises, pe)
	}

	total := 0
	for _, pe := range exercises {
		total += pe.TotalSeconds()
	}
	realized := (total + 59) / 60

	plan := domain.WorkoutPlan{
		Exercises:       exercises,
		TargetMinutes:   req.DurationMinutes,
		DurationMinutes: realized,
		Difficulty:      req.Difficulty,
		Category:        focusLabel(focus),
		EquipmentTier:   req.EquipmentTier,
		OwnedEquipment:  append([]string(nil), req.OwnedEquipment...),
		Mode:            domain.PlanModeSingle,
	}
	if packed.SlackSeconds() > GapFillSlackSeconds {
		plan.ShortfallMinutes = packed.SlackSeconds() / 60
	}
	plan.Description = describe(req, focus, len(warmup), len(packed.Selected), len(cooldown), realized, packed)
	return plan
}

// weekly builds the container plan with one child per scheduled day. The balancer is not used
// for weekly plans.
func (g *Generator) weekly(req Request, rng *rand.Rand, now time.Time) domain.WorkoutPlan {
	days := ScheduleDays(req.Frequency, req.Weekdays)
	focus := AssignFocus(req.FocusAreas, len(days))

	container := domain.WorkoutPlan{
		Name:           fmt.Sprintf("Weekly %s plan: %d sessions", req.Difficulty, len(days)),
		TargetMinutes:  req.DurationMinutes,
		Difficulty:     req.Difficulty,
		Category:       focusLabel(uniqueFocus(focus)),
		EquipmentTier:  req.EquipmentTier,
		OwnedEquipment: append([]string(nil), req.OwnedEquipment...),
		Mode:           domain.PlanModeWeekly,
		RestDays:       weekdayNames(RestDays(days)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	shortDays := 0
	for i, day := range days {
		child := g.session(req, []domain.FocusArea{focus[i]}, nil, rng)
		date := DateInWeek(now, day)
		child.Name = fmt.Sprintf("%s: %s", day, focusTitle(focus[i]))
		child.Mode = domain.PlanModeWeekly
		child.DayOfWeek = day.String()
		child.ScheduledDate = &date
		child.Focus = focus[i]
		child.CreatedAt = now
		child.UpdatedAt = now
		container.DurationMinutes += child.DurationMinutes
		if child.ShortfallMinutes > 0 {
			shortDays++
		}
		container.WeeklyWorkouts = append(container.WeeklyWorkouts, child)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s sessions of about %d minutes on %s. Rest days: %s.",
		len(days), req.Difficulty, req.DurationMinutes,
		strings.Join(weekdayNames(days), ", "), strings.Join(container.RestDays, ", "))
	if shortDays > 0 {
		fmt.Fprintf(&b, " %d of the sessions are shorter than requested because too few exercises match.", shortDays)
	}
	container.Description = b.String()
	return container
}

func describe(req Request, focus []domain.FocusArea, warm, main, cool, realized int, packed PackResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s session with %d warm-up, %d main and %d cool-down exercises. Target %d min, planned %d min.",
		titleWords(string(req.Difficulty)), focusLabel(focus), warm, main, cool, req.DurationMinutes, realized)
	if packed.SlackSeconds() > GapFillSlackSeconds {
		fmt.Fprintf(&b, " Only %d of %d main-block minutes could be filled with matching exercises.",
			packed.UsedSeconds/60, packed.BudgetSeconds/60)
	}
	return b.String()
}

func sessionName(d domain.Difficulty, focus []domain.FocusArea) string {
	return fmt.Sprintf("%s %s Workout", titleWords(string(d)), titleWords(focusLabel(focus)))
}

// focusLabel joins focus areas for display; no focus reads as full-body.
func focusLabel(focus []domain.FocusArea) string {
	if len(focus) == 0 {
		return string(domain.FocusFullBody)
	}
	parts := make([]string, len(focus))
	for i, f := range focus {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

func focusTitle(f domain.FocusArea) string {
	return titleWords(string(f))
}

func uniqueFocus(focus []domain.FocusArea) []domain.FocusArea {
	seen := make(map[domain.FocusArea]bool)
	var out []domain.FocusArea
	for _, f := range focus {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// titleWords turns "upper-body" into "Upper Body".
func titleWords(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ' ' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

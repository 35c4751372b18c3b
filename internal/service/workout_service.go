package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/generator"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"
)

const (
	// RecentPlansForBalancing is how many stored plans feed the muscle-group balancer.
	RecentPlansForBalancing = generator.RecentPlanWindow

	DefaultProgressDays = 30
	MaxProgressDays     = 365
	maxCalendarRange    = 366 * 24 * time.Hour
)

var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrPlanDayNotFound  = errors.New("workout day not found in plan")
	ErrAlreadyCompleted = errors.New("workout already completed")
)

// GenerateInput is a filter selection. Zero fields are filled from the user's profile and then
// from the generator defaults.
type GenerateInput struct {
	DurationMinutes int
	Difficulty      string
	EquipmentTier   string
	OwnedEquipment  []string
	FocusAreas      []string
	Mode            string
	Frequency       int
	Days            []string
}

type CompleteInput struct {
	DayID  *primitive.ObjectID
	Rating int // 0 means not rated
	Notes  string
}

// CalendarEntry is one scheduled or performed session.
type CalendarEntry struct {
	Date            time.Time           `json:"date"`
	PlanID          primitive.ObjectID  `json:"planId"`
	DayID           *primitive.ObjectID `json:"dayId,omitempty"`
	Name            string              `json:"name"`
	Focus           string              `json:"focus"`
	DurationMinutes int                 `json:"durationMinutes"`
	Completed       bool                `json:"completed"`
}

// Progress summarises the workout logs of a period.
type Progress struct {
	From              time.Time           `json:"from"`
	WorkoutsCompleted int                 `json:"workoutsCompleted"`
	TotalMinutes      int                 `json:"totalMinutes"`
	CurrentStreakDays int                 `json:"currentStreakDays"`
	MuscleGroupCounts map[string]int      `json:"muscleGroupCounts"`
	Logs              []domain.WorkoutLog `json:"logs"`
}

type WorkoutService interface {
	// Generate builds a plan for the user and stores it.
	Generate(ctx context.Context, userID primitive.ObjectID, in GenerateInput) (*domain.WorkoutPlan, error)
	// Preview builds a plan without storing it.
	Preview(ctx context.Context, userID primitive.ObjectID, in GenerateInput) (*domain.WorkoutPlan, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
	CompletePlan(ctx context.Context, userID, planID primitive.ObjectID, in CompleteInput) (*domain.WorkoutLog, error)
	// Calendar lists sessions dated in [from, to). Zero bounds mean the current week.
	Calendar(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]CalendarEntry, error)
	Progress(ctx context.Context, userID primitive.ObjectID, days int) (*Progress, error)
}

type workoutService struct {
	engine   *Engine
	userRepo repository.UserRepository
	planRepo repository.WorkoutPlanRepository
	logRepo  repository.WorkoutLogRepository
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewWorkoutService(
	engine *Engine,
	userRepo repository.UserRepository,
	planRepo repository.WorkoutPlanRepository,
	logRepo repository.WorkoutLogRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) WorkoutService {
	return &workoutService{
		engine:   engine,
		userRepo: userRepo,
		planRepo: planRepo,
		logRepo:  logRepo,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

// BuildRequest merges the input with the profile and validates the result. The duration is
// clamped to [MinDurationMinutes, MaxDurationMinutes].
func BuildRequest(in GenerateInput, profile domain.FitnessProfile) (generator.Request, error) {
	var req generator.Request
	var err error

	req.DurationMinutes = in.DurationMinutes
	if req.DurationMinutes == 0 {
		req.DurationMinutes = profile.PreferredDurationMinutes
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = generator.DefaultDurationMinutes
	}
	req.DurationMinutes = min(max(req.DurationMinutes, MinDurationMinutes), MaxDurationMinutes)

	req.Difficulty = profile.Difficulty
	if in.Difficulty != "" {
		if req.Difficulty, err = domain.ParseDifficulty(in.Difficulty); err != nil {
			return req, validationError(err)
		}
	}
	req.EquipmentTier = profile.EquipmentTier
	if in.EquipmentTier != "" {
		if req.EquipmentTier, err = domain.ParseEquipmentTier(in.EquipmentTier); err != nil {
			return req, validationError(err)
		}
	}
	req.OwnedEquipment = profile.OwnedEquipment
	if in.OwnedEquipment != nil {
		req.OwnedEquipment = in.OwnedEquipment
	}

	req.FocusAreas = profile.FocusAreas
	if in.FocusAreas != nil {
		if req.FocusAreas, err = domain.ParseFocusAreas(in.FocusAreas); err != nil {
			return req, validationError(err)
		}
	}

	req.Mode = domain.PlanModeSingle
	if in.Mode != "" {
		if req.Mode, err = domain.ParsePlanMode(in.Mode); err != nil {
			return req, validationError(err)
		}
	}

	req.Frequency = in.Frequency
	if req.Frequency == 0 {
		req.Frequency = profile.WeeklyFrequency
	}
	days := in.Days
	if days == nil {
		days = profile.PreferredDays
	}
	if req.Weekdays, err = domain.ParseWeekdays(days); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

func (s *workoutService) build(ctx context.Context, userID primitive.ObjectID, in GenerateInput) (*domain.WorkoutPlan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	req, err := BuildRequest(in, user.Profile)
	if err != nil {
		return nil, err
	}

	var recent []domain.WorkoutPlan
	if req.Mode == domain.PlanModeSingle {
		recent, err = s.planRepo.ListByUser(ctx, userID, RecentPlansForBalancing)
		if err != nil {
			return nil, fmt.Errorf("load recent plans: %w", err)
		}
		// the repository lists newest first; the generator wants oldest first
		for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
			recent[i], recent[j] = recent[j], recent[i]
		}
	}

	start := time.Now()
	plan := s.engine.Generator().Generate(req, recent)
	took := time.Since(start)
	plan.UserID = userID

	underfilled := isUnderfilled(&plan)
	s.metrics.ObservePlan(string(plan.Mode), string(plan.Difficulty), underfilled, took)
	if underfilled {
		s.logger.WarnContext(ctx, "plan shorter than requested",
			slog.String("mode", string(plan.Mode)),
			slog.Int("target_minutes", plan.TargetMinutes),
			slog.Int("duration_minutes", plan.DurationMinutes))
	}
	return &plan, nil
}

func isUnderfilled(plan *domain.WorkoutPlan) bool {
	if plan.ShortfallMinutes > 0 {
		return true
	}
	for _, day := range plan.WeeklyWorkouts {
		if day.ShortfallMinutes > 0 {
			return true
		}
	}
	return false
}

func (s *workoutService) Generate(ctx context.Context, userID primitive.ObjectID, in GenerateInput) (*domain.WorkoutPlan, error) {
	plan, err := s.build(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("store plan: %w", err)
	}
	plan.ID = id
	s.logger.InfoContext(ctx, "plan generated",
		slog.String("plan_id", id.Hex()),
		slog.String("mode", string(plan.Mode)),
		slog.Int("duration_minutes", plan.DurationMinutes))
	return plan, nil
}

func (s *workoutService) Preview(ctx context.Context, userID primitive.ObjectID, in GenerateInput) (*domain.WorkoutPlan, error) {
	return s.build(ctx, userID, in)
}

func (s *workoutService) ListPlans(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutPlan, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrValidationFailed)
	}
	return s.planRepo.ListByUser(ctx, userID, limit)
}

func (s *workoutService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *workoutService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// muscleGroups lists the distinct tags of the exercises, sorted.
func muscleGroups(exercises []domain.PlanExercise) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ex := range exercises {
		for _, g := range ex.MuscleGroups {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (s *workoutService) CompletePlan(ctx context.Context, userID, planID primitive.ObjectID, in CompleteInput) (*domain.WorkoutLog, error) {
	if in.Rating < 0 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidationFailed)
	}
	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	target := plan
	if in.DayID != nil {
		day, ok := plan.FindDay(*in.DayID)
		if !ok {
			return nil, ErrPlanDayNotFound
		}
		target = day
	}
	if target.CompletedAt != nil {
		return nil, ErrAlreadyCompleted
	}

	now := s.now().UTC()
	if err := s.planRepo.MarkCompleted(ctx, planID, userID, in.DayID, now); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	if in.DayID != nil && plan.CompletedAt == nil && allDaysDone(plan, *in.DayID) {
		if err := s.planRepo.MarkCompleted(ctx, planID, userID, nil, now); err != nil {
			return nil, fmt.Errorf("mark plan completed: %w", err)
		}
	}

	log := &domain.WorkoutLog{
		UserID:          userID,
		PlanID:          planID,
		DayID:           in.DayID,
		PlanName:        target.Name,
		DurationMinutes: target.DurationMinutes,
		MuscleGroups:    muscleGroups(target.AllExercises()),
		Rating:          in.Rating,
		Notes:           strings.TrimSpace(in.Notes),
		CompletedAt:     now,
	}
	id, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("store workout log: %w", err)
	}
	log.ID = id
	return log, nil
}

// allDaysDone reports whether every day but justDone already has a completion stamp.
func allDaysDone(plan *domain.WorkoutPlan, justDone primitive.ObjectID) bool {
	for _, day := range plan.WeeklyWorkouts {
		if day.ID != justDone && day.CompletedAt == nil {
			return false
		}
	}
	return len(plan.WeeklyWorkouts) > 0
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *workoutService) Calendar(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]CalendarEntry, error) {
	if from.IsZero() {
		from = generator.WeekStart(s.now().UTC())
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 7)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: range end must be after its start", ErrValidationFailed)
	}
	if to.Sub(from) > maxCalendarRange {
		return nil, fmt.Errorf("%w: range must not exceed a year", ErrValidationFailed)
	}

	plans, err := s.planRepo.ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	in := func(t time.Time) bool { return !t.Before(from) && t.Before(to) }

	entries := []CalendarEntry{}
	for _, plan := range plans {
		if !plan.IsContainer() {
			if in(plan.CreatedAt) {
				entries = append(entries, CalendarEntry{
					Date:            startOfDay(plan.CreatedAt),
					PlanID:          plan.ID,
					Name:            plan.Name,
					Focus:           plan.Category,
					DurationMinutes: plan.DurationMinutes,
					Completed:       plan.CompletedAt != nil,
				})
			}
			continue
		}
		for _, day := range plan.WeeklyWorkouts {
			if day.ScheduledDate == nil || !in(*day.ScheduledDate) {
				continue
			}
			dayID := day.ID
			entries = append(entries, CalendarEntry{
				Date:            startOfDay(*day.ScheduledDate),
				PlanID:          plan.ID,
				DayID:           &dayID,
				Name:            day.Name,
				Focus:           string(day.Focus),
				DurationMinutes: day.DurationMinutes,
				Completed:       day.CompletedAt != nil,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (s *workoutService) Progress(ctx context.Context, userID primitive.ObjectID, days int) (*Progress, error) {
	if days == 0 {
		days = DefaultProgressDays
	}
	if days < 1 || days > MaxProgressDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrValidationFailed, MaxProgressDays)
	}
	today := startOfDay(s.now().UTC())
	from := today.AddDate(0, 0, -(days - 1))

	logs, err := s.logRepo.ListByUser(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	p := &Progress{
		From:              from,
		WorkoutsCompleted: len(logs),
		MuscleGroupCounts: make(map[string]int),
		Logs:              logs,
	}
	active := make(map[time.Time]bool)
	for _, l := range logs {
		p.TotalMinutes += l.DurationMinutes
		for _, g := range l.MuscleGroups {
			p.MuscleGroupCounts[g]++
		}
		active[startOfDay(l.CompletedAt.UTC())] = true
	}
	p.CurrentStreakDays = streak(active, today)
	return p, nil
}

// streak counts consecutive active days ending today, or yesterday when today has no workout yet.
func streak(active map[time.Time]bool, today time.Time) int {
	day := today
	if !active[day] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for active[day] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidValue is returned by the Parse* helpers for strings outside the closed enums.
var ErrInvalidValue = errors.New("invalid value")

// Category is the fixed set of exercise categories in the catalog.
type Category string

const (
	CategoryCardio      Category = "cardio"
	CategoryChest       Category = "chest"
	CategoryBack        Category = "back"
	CategoryShoulders   Category = "shoulders"
	CategoryArms        Category = "arms"
	CategoryLegs        Category = "legs"
	CategoryCore        Category = "core"
	CategoryFlexibility Category = "flexibility"
	CategoryFunctional  Category = "functional"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryCardio, CategoryChest, CategoryBack, CategoryShoulders, CategoryArms,
	CategoryLegs, CategoryCore, CategoryFlexibility, CategoryFunctional,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: category %q", ErrInvalidValue, s)
	}
	return c, nil
}

// EquipmentTier is the coarse equipment bucket of an exercise or a request.
type EquipmentTier string

const (
	EquipmentNone  EquipmentTier = "none"
	EquipmentBasic EquipmentTier = "basic"
	EquipmentGym   EquipmentTier = "gym"
)

func (e EquipmentTier) Valid() bool {
	return e == EquipmentNone || e == EquipmentBasic || e == EquipmentGym
}

// ParseEquipmentTier parses an equipment tier case-insensitively.
func ParseEquipmentTier(s string) (EquipmentTier, error) {
	e := EquipmentTier(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: equipment tier %q", ErrInvalidValue, s)
	}
	return e, nil
}

// Difficulty is the training level of an exercise or a request.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}

// ParseDifficulty parses a difficulty case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: difficulty %q", ErrInvalidValue, s)
	}
	return d, nil
}

// FocusArea is a requested emphasis: a direct category or a coarse grouping.
type FocusArea string

const (
	FocusFullBody    FocusArea = "full-body"
	FocusUpperBody   FocusArea = "upper-body"
	FocusLowerBody   FocusArea = "lower-body"
	FocusCore        FocusArea = "core"
	FocusCardio      FocusArea = "cardio"
	FocusFlexibility FocusArea = "flexibility"
	FocusChest       FocusArea = "chest"
	FocusBack        FocusArea = "back"
	FocusShoulders   FocusArea = "shoulders"
	FocusArms        FocusArea = "arms"
	FocusLegs        FocusArea = "legs"
	FocusFunctional  FocusArea = "functional"
)

// focusExpansion maps every focus area to the categories it selects.
// FocusFullBody is absent on purpose: it disables focus filtering altogether.
var focusExpansion = map[FocusArea][]Category{
	FocusUpperBody:   {CategoryChest, CategoryBack, CategoryShoulders, CategoryArms},
	FocusLowerBody:   {CategoryLegs},
	FocusCore:        {CategoryCore},
	FocusCardio:      {CategoryCardio},
	FocusFlexibility: {CategoryFlexibility},
	FocusChest:       {CategoryChest},
	FocusBack:        {CategoryBack},
	FocusShoulders:   {CategoryShoulders},
	FocusArms:        {CategoryArms},
	FocusLegs:        {CategoryLegs},
	FocusFunctional:  {CategoryFunctional},
}

func (f FocusArea) Valid() bool {
	if f == FocusFullBody {
		return true
	}
	_, ok := focusExpansion[f]
	return ok
}

// Categories returns the categories selected by the focus area. Full body returns nil.
func (f FocusArea) Categories() []Category {
	return focusExpansion[f]
}

// Covers reports whether the focus area selects the given category.
func (f FocusArea) Covers(c Category) bool {
	if f == FocusFullBody {
		return true
	}
	for _, fc := range focusExpansion[f] {
		if fc == c {
			return true
		}
	}
	return false
}

// ParseFocusArea accepts the canonical tag plus a few spellings used by clients ("upper", "upper_body").
func ParseFocusArea(s string) (FocusArea, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	norm = strings.ReplaceAll(norm, " ", "-")
	switch norm {
	case "upper":
		norm = string(FocusUpperBody)
	case "lower":
		norm = string(FocusLowerBody)
	case "full", "fullbody":
		norm = string(FocusFullBody)
	}
	f := FocusArea(norm)
	if !f.Valid() {
		return "", fmt.Errorf("%w: focus area %q", ErrInvalidValue, s)
	}
	return f, nil
}

// ParseFocusAreas parses a list, dropping duplicates while keeping order.
func ParseFocusAreas(values []string) ([]FocusArea, error) {
	out := make([]FocusArea, 0, len(values))
	seen := make(map[FocusArea]bool, len(values))
	for _, v := range values {
		f, err := ParseFocusArea(v)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// PlanMode selects single-session or weekly generation.
type PlanMode string

const (
	PlanModeSingle PlanMode = "single"
	PlanModeWeekly PlanMode = "weekly"
)

func (m PlanMode) Valid() bool {
	return m == PlanModeSingle || m == PlanModeWeekly
}

// ParsePlanMode parses a plan mode case-insensitively.
func ParsePlanMode(s string) (PlanMode, error) {
	m := PlanMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: plan mode %q", ErrInvalidValue, s)
	}
	return m, nil
}

// MuscleGroup tags used by the recency balancer.
const (
	MuscleChest          = "chest"
	MuscleBack           = "back"
	MuscleShoulders      = "shoulders"
	MuscleBiceps         = "biceps"
	MuscleTriceps        = "triceps"
	MuscleQuads          = "quads"
	MuscleHamstrings     = "hamstrings"
	MuscleGlutes         = "glutes"
	MuscleCalves         = "calves"
	MuscleCore           = "core"
	MuscleCardiovascular = "cardiovascular"
)

// CanonicalMuscleGroups is the fixed list the balancer checks for underuse.
var CanonicalMuscleGroups = []string{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps, MuscleQuads,
	MuscleHamstrings, MuscleGlutes, MuscleCalves, MuscleCore, MuscleCardiovascular,
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if norm == name || norm == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: weekday %q", ErrInvalidValue, s)
}

// ParseWeekdays parses a list of weekday names.
func ParseWeekdays(values []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		d, err := ParseWeekday(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

package generator

import "alcyxob/workout-planner/internal/domain"

// MatchesDifficulty applies the cumulative difficulty rule. Beginner requests take beginner
// exercises only; intermediate requests add intermediate ones; advanced requests take advanced
// and intermediate exercises except intermediate stretches.
func MatchesDifficulty(ex domain.Exercise, requested domain.Difficulty) bool {
	switch requested {
	case domain.DifficultyAdvanced:
		if ex.Difficulty == domain.DifficultyAdvanced {
			return true
		}
		return ex.Difficulty == domain.DifficultyIntermediate && ex.Category != domain.CategoryFlexibility
	case domain.DifficultyIntermediate:
		return ex.Difficulty == domain.DifficultyBeginner || ex.Difficulty == domain.DifficultyIntermediate
	default:
		return ex.Difficulty == domain.DifficultyBeginner
	}
}

// MatchesFocus reports whether the exercise's category is selected by any of the focus areas.
// No focus areas, or full-body among them, selects everything.
func MatchesFocus(ex domain.Exercise, focus []domain.FocusArea) bool {
	if len(focus) == 0 {
		return true
	}
	for _, f := range focus {
		if f.Covers(ex.Category) {
			return true
		}
	}
	return false
}

// Criteria is the subset of a request the catalog filter looks at.
type Criteria struct {
	Difficulty     domain.Difficulty
	EquipmentTier  domain.EquipmentTier
	OwnedEquipment []string
	FocusAreas     []domain.FocusArea
}

// FilterPool returns the exercises usable under c, preserving input order.
func FilterPool(exercises []domain.Exercise, c Criteria, policy Policy) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range exercises {
		if !MatchesEquipment(ex, c.EquipmentTier, c.OwnedEquipment, policy) {
			continue
		}
		if !MatchesDifficulty(ex, c.Difficulty) || !MatchesFocus(ex, c.FocusAreas) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

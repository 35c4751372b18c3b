package generator

import "alcyxob/workout-planner/internal/domain"

const (
	// RecentPlanWindow is how many of the latest plans the balancer looks at.
	RecentPlanWindow = 5
	// UnderusedThreshold is the tally below which a canonical muscle group counts as underused.
	UnderusedThreshold = 2
)

// UnderusedMuscleGroups tallies muscle-group tags over the last RecentPlanWindow plans of recent
// (oldest first) and returns the canonical groups seen fewer than UnderusedThreshold times.
// Weekly containers count the exercises of their daily plans. Without history there is nothing
// to balance against and the result is empty.
func UnderusedMuscleGroups(recent []domain.WorkoutPlan) map[string]bool {
	if len(recent) == 0 {
		return map[string]bool{}
	}
	if len(recent) > RecentPlanWindow {
		recent = recent[len(recent)-RecentPlanWindow:]
	}
	tally := make(map[string]int)
	for i := range recent {
		for _, ex := range recent[i].AllExercises() {
			for _, mg := range ex.MuscleGroups {
				tally[mg]++
			}
		}
	}
	underused := make(map[string]bool)
	for _, mg := range domain.CanonicalMuscleGroups {
		if tally[mg] < UnderusedThreshold {
			underused[mg] = true
		}
	}
	return underused
}

func touchesAny(ex domain.Exercise, groups map[string]bool) bool {
	for _, mg := range ex.MuscleGroups {
		if groups[mg] {
			return true
		}
	}
	return false
}

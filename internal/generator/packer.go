package generator

import (
	"math/rand/v2"
	"sort"

	"alcyxob/workout-planner/internal/domain"
)

const (
	WarmupSeconds   = 5 * 60
	CooldownSeconds = 5 * 60
	// GapFillSlackSeconds is the slack above which the packer makes a second pass.
	GapFillSlackSeconds = 5 * 60

	warmupSlots   = 2
	cooldownSlots = 2
)

// MainBudgetSeconds is the time left for the main block once warm-up and cool-down are set aside.
func MainBudgetSeconds(targetMinutes int) int {
	return max(0, targetMinutes*60-WarmupSeconds-CooldownSeconds)
}

// RestSeconds is the rest after one exercise. Cardio always rests 60s; everything else rests
// according to the requested difficulty.
func RestSeconds(category domain.Category, difficulty domain.Difficulty) int {
	if category == domain.CategoryCardio {
		return 60
	}
	switch difficulty {
	case domain.DifficultyAdvanced:
		return 120
	case domain.DifficultyIntermediate:
		return 90
	default:
		return 60
	}
}

// orderCandidates shuffles the pool and then stable-sorts it so that advanced exercises lead
// advanced requests and exercises touching an underused muscle group come before the rest.
// The shuffle decides every remaining tie.
func orderCandidates(pool []domain.Exercise, difficulty domain.Difficulty, underused map[string]bool, rng *rand.Rand) []domain.Exercise {
	out := append([]domain.Exercise(nil), pool...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	rank := func(ex domain.Exercise) int {
		r := 0
		if difficulty == domain.DifficultyAdvanced && ex.Difficulty != domain.DifficultyAdvanced {
			r += 2
		}
		if len(underused) > 0 && !touchesAny(ex, underused) {
			r++
		}
		return r
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

// PackResult is the outcome of packing a main block.
type PackResult struct {
	Selected      []domain.Exercise
	UsedSeconds   int
	BudgetSeconds int
}

// SlackSeconds is the unused part of the budget.
func (r PackResult) SlackSeconds() int {
	return r.BudgetSeconds - r.UsedSeconds
}

// Pack selects from the ordered candidates. The first pass is a single greedy scan that accepts
// every candidate still fitting the budget and skips the rest. If more than GapFillSlackSeconds
// remain, a second pass walks the unused candidates in the same order and stops as soon as the
// slack drops below that threshold. The budget is never exceeded.
func Pack(ordered []domain.Exercise, budgetSeconds int, cost func(domain.Exercise) int) PackResult {
	res := PackResult{BudgetSeconds: budgetSeconds}
	used := make([]bool, len(ordered))

	for i, ex := range ordered {
		c := cost(ex)
		if res.UsedSeconds+c <= budgetSeconds {
			res.Selected = append(res.Selected, ex)
			res.UsedSeconds += c
			used[i] = true
		}
	}

	if res.SlackSeconds() <= GapFillSlackSeconds || len(res.Selected) == len(ordered) {
		return res
	}
	// Candidates skipped above cost more than the slack they saw, and slack only shrinks, so this
	// pass accepts nothing with a fixed cost function. It stays as the documented second pass.
	for i, ex := range ordered {
		if used[i] {
			continue
		}
		if res.SlackSeconds() < GapFillSlackSeconds {
			break
		}
		c := cost(ex)
		if res.UsedSeconds+c <= budgetSeconds {
			res.Selected = append(res.Selected, ex)
			res.UsedSeconds += c
			used[i] = true
		}
	}
	return res
}

// pickStretches shuffles the stretches and splits them into warm-up and cool-down slots.
// Missing slots stay empty.
func pickStretches(stretches []domain.Exercise, rng *rand.Rand) (warmup, cooldown []domain.Exercise) {
	pool := append([]domain.Exercise(nil), stretches...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := min(len(pool), warmupSlots)
	warmup = pool[:n]
	if len(pool) > warmupSlots {
		cooldown = pool[warmupSlots:min(len(pool), warmupSlots+cooldownSlots)]
	}
	return warmup, cooldown
}

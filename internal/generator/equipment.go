package generator

import (
	"strings"

	"alcyxob/workout-planner/internal/domain"
)

// Policy holds the tunable knobs of the equipment matcher.
type Policy struct {
	// AllowUnrecognizedBasic lets a basic-class exercise whose text names no known implement
	// through whenever the user owns at least one item. This leniency is pending product
	// confirmation; switch it off to make the basic tier a strict whitelist.
	AllowUnrecognizedBasic bool
}

// DefaultPolicy is the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{AllowUnrecognizedBasic: true}
}

// equipmentKeyword maps phrases found in an exercise's text to the canonical implement names
// compared against the user's owned equipment.
type equipmentKeyword struct {
	phrases   []string
	canonical []string
}

var equipmentKeywords = []equipmentKeyword{
	{phrases: []string{"dumbbell"}, canonical: []string{"dumbbell"}},
	{phrases: []string{"kettlebell"}, canonical: []string{"kettlebell"}},
	{phrases: []string{"resistance band", "mini band"}, canonical: []string{"resistance band", "band"}},
	{phrases: []string{"pull-up", "pullup", "pull up", "chin-up", "chin up"}, canonical: []string{"pull-up bar", "pull up bar", "pullup bar", "chin-up bar"}},
	{phrases: []string{"bench"}, canonical: []string{"bench"}},
	{phrases: []string{"medicine ball", "med ball"}, canonical: []string{"medicine ball", "med ball"}},
	{phrases: []string{"ab wheel", "ab roller"}, canonical: []string{"ab wheel", "ab roller"}},
	{phrases: []string{"jump rope", "skipping rope"}, canonical: []string{"jump rope", "skipping rope"}},
	{phrases: []string{"trx", "suspension"}, canonical: []string{"trx", "suspension trainer"}},
	{phrases: []string{"stability ball", "swiss ball", "exercise ball"}, canonical: []string{"stability ball", "swiss ball", "exercise ball"}},
	{phrases: []string{"barbell"}, canonical: []string{"barbell"}},
	{phrases: []string{"battle rope"}, canonical: []string{"battle rope"}},
	{phrases: []string{"rings", "ring dip", "ring row"}, canonical: []string{"rings", "gymnastic rings"}},
	{phrases: []string{"rowing machine", "rower"}, canonical: []string{"rowing machine", "rower"}},
	{phrases: []string{"treadmill"}, canonical: []string{"treadmill"}},
	{phrases: []string{"stationary bike", "exercise bike", "air bike", "spin bike"}, canonical: []string{"bike"}},
	{phrases: []string{"elliptical"}, canonical: []string{"elliptical"}},
}

func exerciseText(ex domain.Exercise) string {
	return strings.ToLower(ex.Name + " " + ex.Description)
}

// RecognizedEquipment returns the canonical implement names referenced by the exercise's name or
// description, in table order.
func RecognizedEquipment(ex domain.Exercise) []string {
	text := exerciseText(ex)
	var out []string
	for _, kw := range equipmentKeywords {
		for _, p := range kw.phrases {
			if strings.Contains(text, p) {
				out = append(out, kw.canonical...)
				break
			}
		}
	}
	return out
}

// ownsAny reports whether some owned item contains one of the canonical names, ignoring case.
// A short owned item such as "rope" does not unlock "battle rope".
func ownsAny(owned []string, canonical []string) bool {
	for _, item := range owned {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		for _, c := range canonical {
			if strings.Contains(item, c) {
				return true
			}
		}
	}
	return false
}

func hasOwned(owned []string) bool {
	for _, item := range owned {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

// MatchesEquipment decides whether ex can be performed under the requested equipment tier.
// owned is only consulted for the basic tier.
func MatchesEquipment(ex domain.Exercise, tier domain.EquipmentTier, owned []string, policy Policy) bool {
	switch tier {
	case domain.EquipmentGym:
		return true
	case domain.EquipmentBasic:
		switch ex.Equipment {
		case domain.EquipmentNone:
			return true
		case domain.EquipmentBasic:
			canonical := RecognizedEquipment(ex)
			if len(canonical) == 0 {
				return policy.AllowUnrecognizedBasic && hasOwned(owned)
			}
			return ownsAny(owned, canonical)
		default:
			return false
		}
	default:
		return ex.Equipment == domain.EquipmentNone
	}
}

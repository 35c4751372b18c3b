package generator

import (
	"strings"

	"alcyxob/workout-planner/internal/domain"
)

type labelRule struct {
	phrases []string
	label   string
}

// requiredLabels is checked in order; the first match wins.
var requiredLabels = []labelRule{
	{[]string{"dumbbell"}, "Dumbbells"},
	{[]string{"kettlebell"}, "Kettlebell"},
	{[]string{"ez bar", "ez-bar"}, "EZ bar"},
	{[]string{"barbell"}, "Barbell"},
	{[]string{"resistance band", "mini band"}, "Resistance band"},
	{[]string{"pull-up", "pullup", "pull up", "chin-up", "chin up"}, "Pull-up bar"},
	{[]string{"medicine ball", "med ball"}, "Medicine ball"},
	{[]string{"ab wheel", "ab roller"}, "Ab wheel"},
	{[]string{"jump rope", "skipping rope"}, "Jump rope"},
	{[]string{"trx", "suspension"}, "Suspension trainer"},
	{[]string{"stability ball", "swiss ball", "exercise ball"}, "Stability ball"},
	{[]string{"battle rope"}, "Battle rope"},
	{[]string{"rings", "ring dip", "ring row"}, "Gymnastic rings"},
	{[]string{"rowing machine", "rower"}, "Rowing machine"},
	{[]string{"treadmill"}, "Treadmill"},
	{[]string{"air bike", "stationary bike", "exercise bike", "spin bike"}, "Exercise bike"},
	{[]string{"elliptical"}, "Elliptical"},
	{[]string{"cable"}, "Cable machine"},
	{[]string{"sled"}, "Sled"},
	{[]string{"leg press", "machine"}, "Machine"},
	{[]string{"bench"}, "Bench"},
}

// optionalLabels apply to exercises that can be done without equipment but get better with it.
var optionalLabels = []labelRule{
	{[]string{"step-up", "step up"}, "Step or sturdy box"},
	{[]string{"goblet"}, "Dumbbell or kettlebell"},
	{[]string{"elevated", "incline", "decline"}, "Bench or sturdy surface"},
}

func firstLabel(rules []labelRule, text string) string {
	for _, r := range rules {
		for _, p := range r.phrases {
			if strings.Contains(text, p) {
				return r.label
			}
		}
	}
	return ""
}

// EquipmentLabels derives display labels from the exercise text. Only exercises that need
// equipment get a required label. Exercises without one may get an optional label; bodyweight
// squats and lunges suggest dumbbells for extra load. Both are empty when nothing applies.
func EquipmentLabels(ex domain.Exercise) (required, optional string) {
	text := exerciseText(ex)
	if ex.Equipment != domain.EquipmentNone {
		if required = firstLabel(requiredLabels, text); required != "" {
			return required, ""
		}
	}
	if optional = firstLabel(optionalLabels, text); optional != "" {
		return "", optional
	}
	if ex.Equipment == domain.EquipmentNone {
		name := strings.ToLower(ex.Name)
		if strings.Contains(name, "squat") || strings.Contains(name, "lunge") {
			return "", "Dumbbells for added load"
		}
	}
	return "", ""
}

// annotate builds the per-plan copy of a catalog exercise. The catalog entry itself is untouched.
func annotate(ex domain.Exercise, difficulty domain.Difficulty) domain.PlanExercise {
	required, optional := EquipmentLabels(ex)
	return domain.PlanExercise{
		Exercise:          ex.Clone(),
		RestSeconds:       RestSeconds(ex.Category, difficulty),
		EquipmentRequired: required,
		EquipmentOptional: optional,
	}
}

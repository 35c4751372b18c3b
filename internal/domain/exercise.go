// internal/domain/exercise.go
package domain

// Exercise is a read-only catalog definition. Catalog entries are shared between requests and
// must never be modified; annotate a copy through PlanExercise instead.
type Exercise struct {
	ID              string        `bson:"_id" json:"id" yaml:"id"`
	Name            string        `bson:"name" json:"name" yaml:"name"`
	Description     string        `bson:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Category        Category      `bson:"category" json:"category" yaml:"category"`
	Equipment       EquipmentTier `bson:"equipment" json:"equipment" yaml:"equipment"`
	Difficulty      Difficulty    `bson:"difficulty" json:"difficulty" yaml:"difficulty"`
	DurationSeconds int           `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty" yaml:"duration_seconds,omitempty"`
	Reps            int           `bson:"reps,omitempty" json:"reps,omitempty" yaml:"reps,omitempty"`
	Sets            int           `bson:"sets,omitempty" json:"sets,omitempty" yaml:"sets,omitempty"`
	MuscleGroups    []string      `bson:"muscleGroups" json:"muscleGroups" yaml:"muscle_groups"`
}

// SecondsPerRep is the time budget assumed for one repetition when an exercise has no nominal duration.
const SecondsPerRep = 3

// WorkSeconds is the nominal working time of the exercise, excluding rest.
func (e Exercise) WorkSeconds() int {
	if e.DurationSeconds > 0 {
		return e.DurationSeconds
	}
	return e.Sets * e.Reps * SecondsPerRep
}

// Clone returns a copy that shares no slices with the receiver.
func (e Exercise) Clone() Exercise {
	out := e
	out.MuscleGroups = append([]string(nil), e.MuscleGroups...)
	return out
}

// PlanExercise is a catalog exercise annotated for one plan.
type PlanExercise struct {
	Exercise          `bson:",inline"`
	RestSeconds       int    `bson:"restSeconds" json:"restSeconds"`
	EquipmentRequired string `bson:"equipmentRequired,omitempty" json:"equipmentRequired,omitempty"`
	EquipmentOptional string `bson:"equipmentOptional,omitempty" json:"equipmentOptional,omitempty"`
	IsWarmup          bool   `bson:"isWarmup,omitempty" json:"isWarmup,omitempty"`
	IsCooldown        bool   `bson:"isCooldown,omitempty" json:"isCooldown,omitempty"`
}

// TotalSeconds is work time plus rest.
func (p PlanExercise) TotalSeconds() int {
	return p.WorkSeconds() + p.RestSeconds
}

// internal/domain/workout_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutPlan is a generated session (single mode) or a weekly container whose WeeklyWorkouts
// hold one child plan per scheduled day. Children are embedded, never stored on their own.
type WorkoutPlan struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises        []PlanExercise     `bson:"exercises,omitempty" json:"exercises"`
	TargetMinutes    int                `bson:"targetMinutes" json:"targetMinutes"`
	DurationMinutes  int                `bson:"durationMinutes" json:"durationMinutes"` // realized
	ShortfallMinutes int                `bson:"shortfallMinutes,omitempty" json:"shortfallMinutes,omitempty"`
	Difficulty       Difficulty         `bson:"difficulty" json:"difficulty"`
	Category         string             `bson:"category" json:"category"`
	EquipmentTier    EquipmentTier      `bson:"equipmentTier" json:"equipmentTier"`
	OwnedEquipment   []string           `bson:"ownedEquipment,omitempty" json:"ownedEquipment,omitempty"`
	Mode             PlanMode           `bson:"mode" json:"mode"`

	// Weekly children only.
	DayOfWeek     string     `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"`
	ScheduledDate *time.Time `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	Focus         FocusArea  `bson:"focus,omitempty" json:"focus,omitempty"`

	// Weekly containers only.
	WeeklyWorkouts []WorkoutPlan `bson:"weeklyWorkouts,omitempty" json:"weeklyWorkouts,omitempty"`
	RestDays       []string      `bson:"restDays,omitempty" json:"restDays,omitempty"`

	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsContainer reports whether the plan is a weekly container.
func (p *WorkoutPlan) IsContainer() bool {
	return p.Mode == PlanModeWeekly && len(p.WeeklyWorkouts) > 0
}

// AllExercises returns the plan's own exercises followed by those of its children.
func (p *WorkoutPlan) AllExercises() []PlanExercise {
	out := append([]PlanExercise(nil), p.Exercises...)
	for i := range p.WeeklyWorkouts {
		out = append(out, p.WeeklyWorkouts[i].AllExercises()...)
	}
	return out
}

// MainExercises returns the exercises that are neither warm-up nor cool-down.
func (p *WorkoutPlan) MainExercises() []PlanExercise {
	var out []PlanExercise
	for _, ex := range p.Exercises {
		if !ex.IsWarmup && !ex.IsCooldown {
			out = append(out, ex)
		}
	}
	return out
}

// FindDay returns the weekly child with the given id.
func (p *WorkoutPlan) FindDay(id primitive.ObjectID) (*WorkoutPlan, bool) {
	for i := range p.WeeklyWorkouts {
		if p.WeeklyWorkouts[i].ID == id {
			return &p.WeeklyWorkouts[i], true
		}
	}
	return nil, false
}

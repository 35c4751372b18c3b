package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLog records one completed session, either a single plan or one day of a weekly plan.
type WorkoutLog struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	PlanID          primitive.ObjectID  `bson:"planId" json:"planId"`
	DayID           *primitive.ObjectID `bson:"dayId,omitempty" json:"dayId,omitempty"`
	PlanName        string              `bson:"planName" json:"planName"`
	DurationMinutes int                 `bson:"durationMinutes" json:"durationMinutes"`
	MuscleGroups    []string            `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`
	Rating          int                 `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt     time.Time           `bson:"completedAt" json:"completedAt"`
}

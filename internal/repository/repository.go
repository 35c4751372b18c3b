package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, profile domain.FitnessProfile) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetAvatarKey(ctx context.Context, id primitive.ObjectID, key string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutPlanRepository stores generated plans. Weekly children are embedded in their container
// and get their own ids on Create so they can be addressed individually.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	// GetByID only returns plans owned by userID.
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	// ListByUser returns the newest plans first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutPlan, error)
	// ListInRange returns single plans created in [from, to) and weekly plans with at least one
	// day scheduled in [from, to).
	ListInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutPlan, error)
	// MarkCompleted stamps the plan, or only the given weekly day when dayID is set.
	MarkCompleted(ctx context.Context, id, userID primitive.ObjectID, dayID *primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// WorkoutLogRepository stores completed sessions.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	// ListByUser returns logs completed at or after since, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutLog, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// ExerciseRepository holds a database copy of the exercise catalog.
type ExerciseRepository interface {
	List(ctx context.Context) ([]domain.Exercise, error)
	ReplaceAll(ctx context.Context, exercises []domain.Exercise) error
	Count(ctx context.Context) (int64, error)
}

// AssignPlanIDs gives the plan and each of its weekly days a fresh id where none is set.
func AssignPlanIDs(plan *domain.WorkoutPlan) {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	for i := range plan.WeeklyWorkouts {
		if plan.WeeklyWorkouts[i].ID.IsZero() {
			plan.WeeklyWorkouts[i].ID = primitive.NewObjectID()
		}
		plan.WeeklyWorkouts[i].UserID = plan.UserID
	}
}

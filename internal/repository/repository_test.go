package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/domain"
)

func TestAssignPlanIDs(t *testing.T) {
	userID := primitive.NewObjectID()
	keep := primitive.NewObjectID()
	plan := domain.WorkoutPlan{
		UserID:         userID,
		WeeklyWorkouts: []domain.WorkoutPlan{{}, {ID: keep}},
	}
	AssignPlanIDs(&plan)

	assert.False(t, plan.ID.IsZero())
	assert.False(t, plan.WeeklyWorkouts[0].ID.IsZero())
	assert.Equal(t, keep, plan.WeeklyWorkouts[1].ID)
	assert.NotEqual(t, plan.ID, plan.WeeklyWorkouts[0].ID)
	for _, day := range plan.WeeklyWorkouts {
		assert.Equal(t, userID, day.UserID)
	}
}

func TestRepositoryErrorWrapping(t *testing.T) {
	err := fmt.Errorf("get plan: %w", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrDuplicateKey))
}

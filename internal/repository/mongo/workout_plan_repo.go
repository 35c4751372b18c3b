// internal/repository/mongo/workout_plan_repo.go
package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"
)

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Create inserts a plan together with its weekly days.
func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and name")
	}
	repository.AssignPlanIDs(plan)
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan owned by userID.
func (r *mongoWorkoutPlanRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// ListByUser retrieves the user's plans, newest first.
func (r *mongoWorkoutPlanRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"userId": userID}, findOptions)
}

// ListInRange retrieves plans that fall on a calendar range.
func (r *mongoWorkoutPlanRepository) ListInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutPlan, error) {
	window := bson.M{"$gte": from, "$lt": to}
	filter := bson.M{
		"userId": userID,
		"$or": bson.A{
			bson.M{"mode": domain.PlanModeSingle, "createdAt": window},
			bson.M{"weeklyWorkouts.scheduledDate": window},
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

func (r *mongoWorkoutPlanRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.WorkoutPlan, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.WorkoutPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// MarkCompleted sets completedAt on the plan, or on one weekly day.
func (r *mongoWorkoutPlanRepository) MarkCompleted(ctx context.Context, id, userID primitive.ObjectID, dayID *primitive.ObjectID, at time.Time) error {
	filter := bson.M{"_id": id, "userId": userID}
	set := bson.M{"updatedAt": time.Now().UTC()}
	updateOptions := options.Update()
	if dayID != nil {
		filter["weeklyWorkouts._id"] = *dayID
		set["weeklyWorkouts.$[day].completedAt"] = at
		updateOptions.SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"day._id": *dayID}},
		})
	} else {
		set["completedAt"] = at
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set}, updateOptions)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan owned by userID.
func (r *mongoWorkoutPlanRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	// Filter ensures that the plan exists AND belongs to the user.
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every plan of a user.
func (r *mongoWorkoutPlanRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History listing: a user's plans, newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Calendar lookups of weekly days
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weeklyWorkouts.scheduledDate", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.WarnContext(ctx, "failed to create indexes", "collection", collection.Name(), "error", err)
	}
}

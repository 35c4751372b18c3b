package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/generator"
	"alcyxob/workout-planner/internal/logging"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository/memory"
	"alcyxob/workout-planner/internal/storage"
)

// Wednesday
var fixedNow = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	users     *memory.UserRepository
	plans     *memory.WorkoutPlanRepository
	logs      *memory.WorkoutLogRepository
	exercises *memory.ExerciseRepository
	files     *storage.MemoryStorage
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	engine    *Engine

	auth     AuthService
	accounts AccountService
	workouts WorkoutService
	catalog  CatalogService
	exports  ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	f := &fixture{
		users:     memory.NewUserRepository(),
		plans:     memory.NewWorkoutPlanRepository(),
		logs:      memory.NewWorkoutLogRepository(),
		exercises: memory.NewExerciseRepository(),
		files:     storage.NewMemoryStorage(),
		registry:  reg,
		metrics:   metrics.NewMetrics(reg),
		engine: NewEngine(catalog.MustDefault(),
			generator.WithSeed(7), generator.WithClock(func() time.Time { return fixedNow })),
	}
	logger := logging.Discard()
	f.auth = NewAuthService(f.users, "test-secret", time.Hour, logger)
	f.accounts = NewAccountService(f.users, f.plans, f.logs, f.files, logger)
	f.accounts.(*accountService).now = func() time.Time { return fixedNow }
	f.workouts = NewWorkoutService(f.engine, f.users, f.plans, f.logs, f.metrics, logger)
	f.workouts.(*workoutService).now = func() time.Time { return fixedNow }
	f.catalog = NewCatalogService(f.engine, f.exercises, logger)
	f.exports = NewExportService(f.workouts, f.files, logger)
	return f
}

func (f *fixture) register(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), "Test User", email, "password123")
	require.NoError(t, err)
	return u
}

func (f *fixture) onboard(t *testing.T, userID primitive.ObjectID, in ProfileInput) {
	t.Helper()
	_, err := f.accounts.UpdateProfile(context.Background(), userID, in)
	require.NoError(t, err)
}

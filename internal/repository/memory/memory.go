// Package memory provides in-process repositories. They back the test suites and local runs
// without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) update(id primitive.ObjectID, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, profile domain.FitnessProfile) error {
	return r.update(id, func(u *domain.User) {
		u.Name = name
		u.Profile = profile
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.update(id, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (r *UserRepository) SetAvatarKey(_ context.Context, id primitive.ObjectID, key string) error {
	return r.update(id, func(u *domain.User) { u.AvatarKey = key })
}

func (r *UserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// WorkoutPlanRepository is an in-memory repository.WorkoutPlanRepository.
type WorkoutPlanRepository struct {
	mu    sync.RWMutex
	plans []domain.WorkoutPlan
}

func NewWorkoutPlanRepository() *WorkoutPlanRepository {
	return &WorkoutPlanRepository{}
}

func (r *WorkoutPlanRepository) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	repository.AssignPlanIDs(plan)
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	r.plans = append(r.plans, clonePlan(*plan))
	return plan.ID, nil
}

func (r *WorkoutPlanRepository) indexOf(id, userID primitive.ObjectID) int {
	for i, p := range r.plans {
		if p.ID == id && p.UserID == userID {
			return i
		}
	}
	return -1
}

func (r *WorkoutPlanRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id, userID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := clonePlan(r.plans[i])
	return &p, nil
}

func (r *WorkoutPlanRepository) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WorkoutPlan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, clonePlan(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *WorkoutPlanRepository) ListInRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	in := func(t time.Time) bool { return !t.Before(from) && t.Before(to) }
	out := []domain.WorkoutPlan{}
	for _, p := range r.plans {
		if p.UserID != userID {
			continue
		}
		match := p.Mode == domain.PlanModeSingle && in(p.CreatedAt)
		for _, day := range p.WeeklyWorkouts {
			if day.ScheduledDate != nil && in(*day.ScheduledDate) {
				match = true
			}
		}
		if match {
			out = append(out, clonePlan(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *WorkoutPlanRepository) MarkCompleted(_ context.Context, id, userID primitive.ObjectID, dayID *primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id, userID)
	if i < 0 {
		return repository.ErrNotFound
	}
	p := &r.plans[i]
	if dayID == nil {
		p.CompletedAt = &at
		return nil
	}
	day, ok := p.FindDay(*dayID)
	if !ok {
		return repository.ErrNotFound
	}
	day.CompletedAt = &at
	return nil
}

func (r *WorkoutPlanRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id, userID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.plans = append(r.plans[:i], r.plans[i+1:]...)
	return nil
}

func (r *WorkoutPlanRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.plans[:0]
	for _, p := range r.plans {
		if p.UserID == userID {
			n++
			continue
		}
		kept = append(kept, p)
	}
	r.plans = kept
	return n, nil
}

// clonePlan copies the parts of a plan callers may modify.
func clonePlan(p domain.WorkoutPlan) domain.WorkoutPlan {
	p.Exercises = append([]domain.PlanExercise(nil), p.Exercises...)
	p.RestDays = append([]string(nil), p.RestDays...)
	if p.WeeklyWorkouts != nil {
		days := make([]domain.WorkoutPlan, len(p.WeeklyWorkouts))
		for i, d := range p.WeeklyWorkouts {
			days[i] = clonePlan(d)
		}
		p.WeeklyWorkouts = days
	}
	return p
}

// WorkoutLogRepository is an in-memory repository.WorkoutLogRepository.
type WorkoutLogRepository struct {
	mu   sync.RWMutex
	logs []domain.WorkoutLog
}

func NewWorkoutLogRepository() *WorkoutLogRepository {
	return &WorkoutLogRepository{}
}

func (r *WorkoutLogRepository) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = primitive.NewObjectID()
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now().UTC()
	}
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *WorkoutLogRepository) ListByUser(_ context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WorkoutLog{}
	for _, l := range r.logs {
		if l.UserID == userID && !l.CompletedAt.Before(since) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (r *WorkoutLogRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.UserID == userID {
			n++
			continue
		}
		kept = append(kept, l)
	}
	r.logs = kept
	return n, nil
}

// ExerciseRepository is an in-memory repository.ExerciseRepository.
type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises []domain.Exercise
}

func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{}
}

func (r *ExerciseRepository) List(context.Context) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Exercise, len(r.exercises))
	for i, ex := range r.exercises {
		out[i] = ex.Clone()
	}
	return out, nil
}

func (r *ExerciseRepository) ReplaceAll(_ context.Context, exercises []domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises = make([]domain.Exercise, len(exercises))
	for i, ex := range exercises {
		r.exercises[i] = ex.Clone()
	}
	return nil
}

func (r *ExerciseRepository) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.exercises)), nil
}

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.WorkoutPlanRepository = (*WorkoutPlanRepository)(nil)
	_ repository.WorkoutLogRepository  = (*WorkoutLogRepository)(nil)
	_ repository.ExerciseRepository    = (*ExerciseRepository)(nil)
)

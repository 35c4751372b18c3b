package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/export"
	"alcyxob/workout-planner/internal/generator"
	"alcyxob/workout-planner/internal/logging"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository/memory"
	"alcyxob/workout-planner/internal/service"
	"alcyxob/workout-planner/internal/storage"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	users  *memory.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := logging.Discard()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	users := memory.NewUserRepository()
	plans := memory.NewWorkoutPlanRepository()
	logs := memory.NewWorkoutLogRepository()
	files := storage.NewMemoryStorage()
	engine := service.NewEngine(catalog.MustDefault(), generator.WithSeed(3))

	workouts := service.NewWorkoutService(engine, users, plans, logs, m, logger)
	services := Services{
		Auth:     service.NewAuthService(users, testSecret, time.Hour, logger),
		Accounts: service.NewAccountService(users, plans, logs, files, logger),
		Workouts: workouts,
		Catalog:  service.NewCatalogService(engine, memory.NewExerciseRepository(), logger),
		Exports:  service.NewExportService(workouts, files, logger),
	}
	router := NewRouter(logger, m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	SetupRoutes(router, testSecret, services, logger)
	return &testServer{router: router, users: users}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// signup registers and logs in a member and returns the token.
func (s *testServer) signup(t *testing.T, email string) (string, UserResponse) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Name: "Tester", Email: email, Password: "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[LoginResponse](t, w)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func signToken(t *testing.T, userID string, role domain.Role, expires time.Time) string {
	t.Helper()
	claims := &service.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	_, user := s.signup(t, "member@example.com")
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.False(t, user.Onboarded)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Name: "Again", Email: "member@example.com", Password: "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Name: "Short", Email: "short@example.com", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "member@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired := signToken(t, primitive.NewObjectID().Hex(), domain.RoleMember, time.Now().Add(-time.Minute))
	w = s.do(t, http.MethodGet, "/api/v1/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOnboardingAndMe(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "onboard@example.com")

	w := s.do(t, http.MethodPut, "/api/v1/me/profile", token, ProfileRequest{
		Difficulty:      "intermediate",
		EquipmentTier:   "basic",
		OwnedEquipment:  []string{"Dumbbells"},
		FocusAreas:      []string{"upper-body"},
		WeeklyFrequency: 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[UserResponse](t, w)
	assert.True(t, me.Onboarded)
	assert.Equal(t, domain.DifficultyIntermediate, me.Profile.Difficulty)
	assert.Equal(t, []domain.FocusArea{domain.FocusUpperBody}, me.Profile.FocusAreas)

	w = s.do(t, http.MethodPut, "/api/v1/me/profile", token, ProfileRequest{FocusAreas: []string{"neck"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/me/password", token, ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "new-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodPut, "/api/v1/me/password", token, ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAvatarEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "avatar@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/me/avatar/upload-url", token, AvatarUploadRequest{ContentType: "image/webp"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	up := decode[AvatarUploadResponse](t, w)
	assert.True(t, strings.HasSuffix(up.ObjectKey, ".webp"))

	w = s.do(t, http.MethodPost, "/api/v1/me/avatar/confirm", token, AvatarConfirmRequest{ObjectKey: "avatars/elsewhere.png"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/me/avatar/confirm", token, AvatarConfirmRequest{ObjectKey: up.ObjectKey})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	assert.NotEmpty(t, decode[UserResponse](t, w).AvatarURL)
}

func TestPlanLifecycle(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "plans@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/plans/generate", token, GenerateRequest{DurationMinutes: 45, Difficulty: "intermediate", FocusAreas: []string{"core"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[domain.WorkoutPlan](t, w)
	assert.False(t, plan.ID.IsZero())
	assert.Equal(t, 45, plan.TargetMinutes)
	for _, ex := range plan.MainExercises() {
		assert.Equal(t, domain.CategoryCore, ex.Category, ex.Name)
	}

	w = s.do(t, http.MethodGet, "/api/v1/plans?limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.WorkoutPlan](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/v1/plans/"+plan.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plan.Name, decode[domain.WorkoutPlan](t, w).Name)

	w = s.do(t, http.MethodPost, "/api/v1/plans/"+plan.ID.Hex()+"/complete", token, CompleteRequest{Rating: 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	log := decode[domain.WorkoutLog](t, w)
	assert.Equal(t, plan.ID, log.PlanID)

	w = s.do(t, http.MethodPost, "/api/v1/plans/"+plan.ID.Hex()+"/complete", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[service.Progress](t, w)
	assert.Equal(t, 1, progress.WorkoutsCompleted)
	assert.Equal(t, 1, progress.CurrentStreakDays)

	w = s.do(t, http.MethodGet, "/api/v1/calendar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]service.CalendarEntry](t, w)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Completed)

	w = s.do(t, http.MethodDelete, "/api/v1/plans/"+plan.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/plans/"+plan.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateFromProfileWithEmptyBody(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "empty@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/plans/preview", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decode[domain.WorkoutPlan](t, w)
	assert.True(t, plan.ID.IsZero())
	assert.Equal(t, generator.DefaultDurationMinutes, plan.TargetMinutes)
	assert.Equal(t, domain.EquipmentNone, plan.EquipmentTier)
}

func TestGenerateValidation(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "invalid@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/plans/generate", token, GenerateRequest{FocusAreas: []string{"neck"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/plans/generate", token, GenerateRequest{Mode: "monthly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/plans/not-an-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/plans?limit=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/calendar?from=14-10-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeeklyPlanDays(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "weekly@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/plans/generate", token, GenerateRequest{Mode: "weekly", Days: []string{"tue", "sat"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[domain.WorkoutPlan](t, w)
	require.Len(t, plan.WeeklyWorkouts, 2)
	assert.Equal(t, "Tuesday", plan.WeeklyWorkouts[0].DayOfWeek)
	assert.Len(t, plan.RestDays, 5)

	w = s.do(t, http.MethodPost, "/api/v1/plans/"+plan.ID.Hex()+"/complete", token, CompleteRequest{DayID: "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/plans/"+plan.ID.Hex()+"/complete", token, CompleteRequest{DayID: primitive.NewObjectID().Hex()})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/plans/"+plan.ID.Hex()+"/complete", token, CompleteRequest{DayID: plan.WeeklyWorkouts[1].ID.Hex()})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestExportEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "export@example.com")
	w := s.do(t, http.MethodPost, "/api/v1/plans/generate", token, GenerateRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	plan := decode[domain.WorkoutPlan](t, w)

	w = s.do(t, http.MethodGet, "/api/v1/plans/"+plan.ID.Hex()+"/export.xlsx", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	wb, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{export.SheetWorkout}, wb.GetSheetList())
	wb.Close()

	w = s.do(t, http.MethodPost, "/api/v1/plans/"+plan.ID.Hex()+"/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode[ExportResponse](t, w).URL, "storage.invalid")
}

func TestExercisesAndAdmin(t *testing.T) {
	s := newTestServer(t)
	token, user := s.signup(t, "catalog@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/exercises?category=cardio&equipment=none", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	exercises := decode[[]domain.Exercise](t, w)
	require.NotEmpty(t, exercises)
	for _, ex := range exercises {
		assert.Equal(t, domain.CategoryCardio, ex.Category)
		assert.Equal(t, domain.EquipmentNone, ex.Equipment)
	}

	w = s.do(t, http.MethodGet, "/api/v1/exercises?difficulty=expert", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/admin/catalog/reseed", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := signToken(t, user.ID, domain.RoleAdmin, time.Now().Add(time.Hour))
	w = s.do(t, http.MethodPost, "/api/v1/admin/catalog/reseed", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, catalog.MustDefault().Len(), decode[ReseedResponse](t, w).Exercises)
}

func TestDeleteMe(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "bye@example.com")

	w := s.do(t, http.MethodDelete, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/ping", "", nil)

	w := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `workout_planner_http_requests_total{method="GET",route="/ping",status="200"} 1`)
}

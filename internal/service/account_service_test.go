package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/logging"
)

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile(ProfileInput{
		Difficulty:               "Intermediate",
		EquipmentTier:            "basic",
		OwnedEquipment:           []string{" Kettlebell ", ""},
		PreferredDurationMinutes: 45,
		FocusAreas:               []string{"upper", "core", "upper-body"},
		WeeklyFrequency:          4,
		PreferredDays:            []string{"mon", "Thursday"},
	})
	require.NoError(t, err)

	want := domain.FitnessProfile{
		Difficulty:               domain.DifficultyIntermediate,
		EquipmentTier:            domain.EquipmentBasic,
		OwnedEquipment:           []string{"Kettlebell"},
		PreferredDurationMinutes: 45,
		FocusAreas:               []domain.FocusArea{domain.FocusUpperBody, domain.FocusCore},
		WeeklyFrequency:          4,
		PreferredDays:            []string{"Monday", "Thursday"},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProfileRejects(t *testing.T) {
	bad := []ProfileInput{
		{Difficulty: "expert"},
		{EquipmentTier: "garage"},
		{FocusAreas: []string{"neck"}},
		{PreferredDays: []string{"someday"}},
		{PreferredDurationMinutes: 3},
		{PreferredDurationMinutes: 121},
		{WeeklyFrequency: 2},
		{WeeklyFrequency: 7},
	}
	for _, in := range bad {
		_, err := ParseProfile(in)
		assert.ErrorIs(t, err, ErrValidationFailed, "%+v", in)
	}
}

func TestUpdateProfileKeepsOnboardingDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "onboard@example.com")

	updated, err := f.accounts.UpdateProfile(ctx, u.ID, ProfileInput{Name: "Renamed", Difficulty: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Profile.OnboardedAt)
	assert.True(t, updated.Profile.OnboardedAt.Equal(fixedNow))

	f.accounts.(*accountService).now = func() time.Time { return fixedNow.Add(48 * time.Hour) }
	again, err := f.accounts.UpdateProfile(ctx, u.ID, ProfileInput{Difficulty: "advanced"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.True(t, again.Profile.OnboardedAt.Equal(fixedNow))

	acc, err := f.accounts.GetAccount(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, acc.User.Onboarded())
	assert.Equal(t, domain.DifficultyAdvanced, acc.User.Profile.Difficulty)
	assert.Empty(t, acc.AvatarURL)

	_, err = f.accounts.UpdateProfile(ctx, primitive.NewObjectID(), ProfileInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "pw@example.com")

	assert.ErrorIs(t, f.accounts.ChangePassword(ctx, u.ID, "password123", "short"), ErrValidationFailed)
	assert.ErrorIs(t, f.accounts.ChangePassword(ctx, u.ID, "wrong-one", "new-password"), ErrPasswordMismatch)
	require.NoError(t, f.accounts.ChangePassword(ctx, u.ID, "password123", "new-password"))

	_, _, err := f.auth.Login(ctx, "pw@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = f.auth.Login(ctx, "pw@example.com", "new-password")
	assert.NoError(t, err)
}

func TestAvatarFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "avatar@example.com")

	_, _, err := f.accounts.AvatarUploadURL(ctx, u.ID, "application/pdf")
	assert.ErrorIs(t, err, ErrValidationFailed)

	url, key, err := f.accounts.AvatarUploadURL(ctx, u.ID, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "avatars/"+u.ID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Contains(t, url, "method=PUT")

	assert.ErrorIs(t, f.accounts.ConfirmAvatar(ctx, u.ID, "avatars/someone-else/x.png"), ErrInvalidAvatarKey)
	require.NoError(t, f.accounts.ConfirmAvatar(ctx, u.ID, key))

	acc, err := f.accounts.GetAccount(ctx, u.ID)
	require.NoError(t, err)
	assert.Contains(t, acc.AvatarURL, "method=GET")
}

func TestAvatarWithoutStorage(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "nostorage@example.com")
	svc := NewAccountService(f.users, f.plans, f.logs, nil, logging.Discard())

	_, _, err := svc.AvatarUploadURL(context.Background(), u.ID, "image/png")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.ConfirmAvatar(context.Background(), u.ID, "avatars/x"), ErrStorageDisabled)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "gone@example.com")
	other := f.register(t, "stays@example.com")

	_, key, err := f.accounts.AvatarUploadURL(ctx, u.ID, "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, f.files.PutObject(ctx, key, "image/jpeg", strings.NewReader("img"), 3))
	require.NoError(t, f.accounts.ConfirmAvatar(ctx, u.ID, key))

	plan, err := f.workouts.Generate(ctx, u.ID, GenerateInput{})
	require.NoError(t, err)
	_, err = f.workouts.CompletePlan(ctx, u.ID, plan.ID, CompleteInput{})
	require.NoError(t, err)
	_, err = f.workouts.Generate(ctx, other.ID, GenerateInput{})
	require.NoError(t, err)

	require.NoError(t, f.accounts.DeleteAccount(ctx, u.ID))

	_, err = f.accounts.GetAccount(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, ok := f.files.Get(key)
	assert.False(t, ok)
	plans, err := f.plans.ListByUser(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, plans)
	logs, err := f.logs.ListByUser(ctx, u.ID, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, logs)

	kept, err := f.plans.ListByUser(ctx, other.ID, 0)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

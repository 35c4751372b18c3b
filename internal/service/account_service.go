package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/generator"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/storage"
)

// Bounds for the values users can save in their fitness profile.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 120
)

var (
	ErrPasswordMismatch = errors.New("current password is incorrect")
	ErrInvalidAvatarKey = errors.New("avatar object key does not belong to this user")
)

// ProfileInput is the onboarding form. Enum fields are raw strings and are parsed here.
type ProfileInput struct {
	Name                     string
	Difficulty               string
	EquipmentTier            string
	OwnedEquipment           []string
	PreferredDurationMinutes int
	FocusAreas               []string
	WeeklyFrequency          int
	PreferredDays            []string
}

// Account is a user together with a temporary avatar URL.
type Account struct {
	User      *domain.User
	AvatarURL string
}

type AccountService interface {
	GetAccount(ctx context.Context, userID primitive.ObjectID) (*Account, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, current, next string) error
	// AvatarUploadURL returns a presigned PUT URL and the object key to confirm afterwards.
	AvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) error
	// DeleteAccount removes the user with all plans, logs and the avatar.
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

type accountService struct {
	userRepo    repository.UserRepository
	planRepo    repository.WorkoutPlanRepository
	logRepo     repository.WorkoutLogRepository
	fileStorage storage.FileStorage // nil when S3 is disabled
	logger      *slog.Logger
	now         func() time.Time
}

func NewAccountService(
	userRepo repository.UserRepository,
	planRepo repository.WorkoutPlanRepository,
	logRepo repository.WorkoutLogRepository,
	fileStorage storage.FileStorage,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		userRepo:    userRepo,
		planRepo:    planRepo,
		logRepo:     logRepo,
		fileStorage: fileStorage,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *accountService) getUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) GetAccount(ctx context.Context, userID primitive.ObjectID) (*Account, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	acc := &Account{User: user}
	if user.AvatarKey != "" && s.fileStorage != nil {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			// The account is still usable without its avatar
			s.logger.WarnContext(ctx, "presign avatar download", slog.Any("error", err))
		} else {
			acc.AvatarURL = url
		}
	}
	return acc, nil
}

// ParseProfile validates a profile form. Empty fields stay unset and fall back to the
// generation defaults later.
func ParseProfile(in ProfileInput) (domain.FitnessProfile, error) {
	var p domain.FitnessProfile
	var err error
	if in.Difficulty != "" {
		if p.Difficulty, err = domain.ParseDifficulty(in.Difficulty); err != nil {
			return p, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
	}
	if in.EquipmentTier != "" {
		if p.EquipmentTier, err = domain.ParseEquipmentTier(in.EquipmentTier); err != nil {
			return p, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
	}
	if p.FocusAreas, err = domain.ParseFocusAreas(in.FocusAreas); err != nil {
		return p, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	days, err := domain.ParseWeekdays(in.PreferredDays)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	for _, d := range days {
		p.PreferredDays = append(p.PreferredDays, d.String())
	}

	if in.PreferredDurationMinutes != 0 &&
		(in.PreferredDurationMinutes < MinDurationMinutes || in.PreferredDurationMinutes > MaxDurationMinutes) {
		return p, fmt.Errorf("%w: preferred duration must be between %d and %d minutes",
			ErrValidationFailed, MinDurationMinutes, MaxDurationMinutes)
	}
	p.PreferredDurationMinutes = in.PreferredDurationMinutes

	if in.WeeklyFrequency != 0 &&
		(in.WeeklyFrequency < generator.MinWeeklyFrequency || in.WeeklyFrequency > generator.MaxWeeklyFrequency) {
		return p, fmt.Errorf("%w: weekly frequency must be between %d and %d",
			ErrValidationFailed, generator.MinWeeklyFrequency, generator.MaxWeeklyFrequency)
	}
	p.WeeklyFrequency = in.WeeklyFrequency

	for _, item := range in.OwnedEquipment {
		if item = strings.TrimSpace(item); item != "" {
			p.OwnedEquipment = append(p.OwnedEquipment, item)
		}
	}
	return p, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := ParseProfile(in)
	if err != nil {
		return nil, err
	}
	onboarded := user.Profile.OnboardedAt
	if onboarded == nil {
		now := s.now().UTC()
		onboarded = &now
	}
	profile.OnboardedAt = onboarded

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = user.Name
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, name, profile); err != nil {
		return nil, err
	}
	user.Name = name
	user.Profile = profile
	user.PasswordHash = ""
	return user, nil
}

func (s *accountService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, next string) error {
	if len(next) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidationFailed, MinPasswordLength)
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func avatarPrefix(userID primitive.ObjectID) string {
	return fmt.Sprintf("avatars/%s/", userID.Hex())
}

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

func (s *accountService) AvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (string, string, error) {
	if s.fileStorage == nil {
		return "", "", ErrStorageDisabled
	}
	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported avatar content type %q", ErrValidationFailed, contentType)
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return "", "", err
	}
	key := avatarPrefix(userID) + uuid.NewString() + ext
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("presign avatar upload: %w", err)
	}
	return url, key, nil
}

func (s *accountService) ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) error {
	if s.fileStorage == nil {
		return ErrStorageDisabled
	}
	if !strings.HasPrefix(objectKey, avatarPrefix(userID)) {
		return ErrInvalidAvatarKey
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetAvatarKey(ctx, userID, objectKey); err != nil {
		return err
	}
	if user.AvatarKey != "" && user.AvatarKey != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, user.AvatarKey); err != nil {
			s.logger.WarnContext(ctx, "delete previous avatar", slog.String("key", user.AvatarKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	plans, err := s.planRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete plans: %w", err)
	}
	logs, err := s.logRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete workout logs: %w", err)
	}
	if user.AvatarKey != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, user.AvatarKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.WarnContext(ctx, "delete avatar", slog.String("key", user.AvatarKey), slog.Any("error", err))
		}
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "account deleted",
		slog.String("user_id", userID.Hex()), slog.Int64("plans", plans), slog.Int64("logs", logs))
	return nil
}

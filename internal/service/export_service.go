package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/export"
	"alcyxob/workout-planner/internal/storage"
)

// ExportURLExpiry is how long a shared export link stays valid.
const ExportURLExpiry = 24 * time.Hour

type ExportService interface {
	// WriteWorkbook renders the plan as xlsx into w and returns a download file name.
	WriteWorkbook(ctx context.Context, userID, planID primitive.ObjectID, w io.Writer) (string, error)
	// Upload stores the workbook in object storage and returns a temporary download URL.
	Upload(ctx context.Context, userID, planID primitive.ObjectID) (url, objectKey string, err error)
}

type exportService struct {
	workouts    WorkoutService
	fileStorage storage.FileStorage // nil when S3 is disabled
	logger      *slog.Logger
}

func NewExportService(workouts WorkoutService, fileStorage storage.FileStorage, logger *slog.Logger) ExportService {
	return &exportService{workouts: workouts, fileStorage: fileStorage, logger: logger}
}

func (s *exportService) WriteWorkbook(ctx context.Context, userID, planID primitive.ObjectID, w io.Writer) (string, error) {
	plan, err := s.workouts.GetPlan(ctx, userID, planID)
	if err != nil {
		return "", err
	}
	if err := export.Write(w, plan); err != nil {
		return "", fmt.Errorf("render workbook: %w", err)
	}
	return export.FileName(plan), nil
}

func (s *exportService) Upload(ctx context.Context, userID, planID primitive.ObjectID) (string, string, error) {
	if s.fileStorage == nil {
		return "", "", ErrStorageDisabled
	}
	var buf bytes.Buffer
	name, err := s.WriteWorkbook(ctx, userID, planID, &buf)
	if err != nil {
		return "", "", err
	}
	key := fmt.Sprintf("exports/%s/%s/%s", userID.Hex(), uuid.NewString(), name)
	if err := s.fileStorage.PutObject(ctx, key, export.ContentType, &buf, int64(buf.Len())); err != nil {
		return "", "", fmt.Errorf("upload workbook: %w", err)
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, ExportURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("presign workbook: %w", err)
	}
	s.logger.InfoContext(ctx, "plan exported", slog.String("plan_id", planID.Hex()), slog.String("key", key))
	return url, key, nil
}

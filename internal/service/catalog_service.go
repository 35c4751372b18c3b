package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"
)

var ErrCatalogReadOnly = errors.New("catalog is not backed by a database")

type CatalogService interface {
	ListExercises(ctx context.Context, q catalog.Query) []domain.Exercise
	// Reseed overwrites the stored catalog with the built-in one and switches the generator to it.
	Reseed(ctx context.Context) (int, error)
}

type catalogService struct {
	engine       *Engine
	exerciseRepo repository.ExerciseRepository // nil unless the catalog lives in MongoDB
	logger       *slog.Logger
}

func NewCatalogService(engine *Engine, exerciseRepo repository.ExerciseRepository, logger *slog.Logger) CatalogService {
	return &catalogService{engine: engine, exerciseRepo: exerciseRepo, logger: logger}
}

func (s *catalogService) ListExercises(_ context.Context, q catalog.Query) []domain.Exercise {
	return s.engine.Generator().Catalog().Find(q)
}

func (s *catalogService) Reseed(ctx context.Context) (int, error) {
	if s.exerciseRepo == nil {
		return 0, ErrCatalogReadOnly
	}
	cat, err := catalog.Default()
	if err != nil {
		return 0, err
	}
	if err := s.exerciseRepo.ReplaceAll(ctx, cat.All()); err != nil {
		return 0, fmt.Errorf("replace exercises: %w", err)
	}
	s.engine.SetCatalog(cat)
	s.logger.InfoContext(ctx, "catalog reseeded", slog.Int("exercises", cat.Len()))
	return cat.Len(), nil
}

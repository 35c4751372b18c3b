package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/service"
)

// ExerciseHandler exposes the exercise catalog.
type ExerciseHandler struct {
	catalogService service.CatalogService
	logger         *slog.Logger
}

func NewExerciseHandler(catalogService service.CatalogService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService, logger: logger}
}

type ReseedResponse struct {
	Exercises int `json:"exercises"`
}

// ListExercises returns catalog entries, optionally filtered by category, difficulty and
// equipment class.
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	var q catalog.Query
	var err error
	if s := c.Query("category"); s != "" {
		if q.Category, err = domain.ParseCategory(s); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	if s := c.Query("difficulty"); s != "" {
		if q.Difficulty, err = domain.ParseDifficulty(s); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	if s := c.Query("equipment"); s != "" {
		if q.Equipment, err = domain.ParseEquipmentTier(s); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	exercises := h.catalogService.ListExercises(c.Request.Context(), q)
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// Reseed replaces the stored catalog with the built-in one. Admins only.
// @Router /admin/catalog/reseed [post]
func (h *ExerciseHandler) Reseed(c *gin.Context) {
	n, err := h.catalogService.Reseed(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ReseedResponse{Exercises: n})
}

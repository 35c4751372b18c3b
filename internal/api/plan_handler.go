package api

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/workout-planner/internal/export"
	"alcyxob/workout-planner/internal/service"
)

// PlanHandler serves plan generation, history and export.
type PlanHandler struct {
	workoutService service.WorkoutService
	exportService  service.ExportService
	logger         *slog.Logger
}

func NewPlanHandler(workoutService service.WorkoutService, exportService service.ExportService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{workoutService: workoutService, exportService: exportService, logger: logger}
}

// GenerateRequest is the filter selection. Omitted fields come from the user's profile.
type GenerateRequest struct {
	DurationMinutes int      `json:"durationMinutes" binding:"omitempty,min=0"`
	Difficulty      string   `json:"difficulty"`
	EquipmentTier   string   `json:"equipmentTier"`
	OwnedEquipment  []string `json:"ownedEquipment"`
	FocusAreas      []string `json:"focusAreas"`
	Mode            string   `json:"mode"`
	Frequency       int      `json:"frequency" binding:"omitempty,min=0"`
	Days            []string `json:"days"`
}

func (r GenerateRequest) input() service.GenerateInput {
	return service.GenerateInput{
		DurationMinutes: r.DurationMinutes,
		Difficulty:      r.Difficulty,
		EquipmentTier:   r.EquipmentTier,
		OwnedEquipment:  r.OwnedEquipment,
		FocusAreas:      r.FocusAreas,
		Mode:            r.Mode,
		Frequency:       r.Frequency,
		Days:            r.Days,
	}
}

type CompleteRequest struct {
	DayID  string `json:"dayId"`
	Rating int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes  string `json:"notes" binding:"max=2000"`
}

type ExportResponse struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

func (h *PlanHandler) bindGenerate(c *gin.Context) (primitive.ObjectID, service.GenerateInput, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return userID, service.GenerateInput{}, false
	}
	var req GenerateRequest
	// an empty body means "use my profile"
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return userID, service.GenerateInput{}, false
		}
	}
	return userID, req.input(), true
}

// Generate builds and stores a plan.
// @Router /plans/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	userID, in, ok := h.bindGenerate(c)
	if !ok {
		return
	}
	plan, err := h.workoutService.Generate(c.Request.Context(), userID, in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// Preview builds a plan without storing it.
// @Router /plans/preview [post]
func (h *PlanHandler) Preview(c *gin.Context) {
	userID, in, ok := h.bindGenerate(c)
	if !ok {
		return
	}
	plan, err := h.workoutService.Preview(c.Request.Context(), userID, in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ListPlans returns the user's plans, newest first.
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	plans, err := h.workoutService.ListPlans(c.Request.Context(), userID, limit)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	plan, err := h.workoutService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	if err := h.workoutService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CompletePlan marks a plan, or one day of a weekly plan, as done.
// @Router /plans/{planId}/complete [post]
func (h *PlanHandler) CompletePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	var req CompleteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	in := service.CompleteInput{Rating: req.Rating, Notes: req.Notes}
	if req.DayID != "" {
		dayID, err := primitive.ObjectIDFromHex(req.DayID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid dayId format")
			return
		}
		in.DayID = &dayID
	}
	log, err := h.workoutService.CompletePlan(c.Request.Context(), userID, planID, in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// DownloadWorkbook streams the plan as an xlsx file.
// @Router /plans/{planId}/export.xlsx [get]
func (h *PlanHandler) DownloadWorkbook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	var buf bytes.Buffer
	name, err := h.exportService.WriteWorkbook(c.Request.Context(), userID, planID, &buf)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// UploadWorkbook stores the workbook in object storage and returns a temporary link.
// @Router /plans/{planId}/export [post]
func (h *PlanHandler) UploadWorkbook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}
	url, key, err := h.exportService.Upload(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ExportResponse{URL: url, ObjectKey: key})
}

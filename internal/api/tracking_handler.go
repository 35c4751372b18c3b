package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-planner/internal/service"
)

const dateLayout = "2006-01-02"

// TrackingHandler serves the calendar and progress views.
type TrackingHandler struct {
	workoutService service.WorkoutService
	logger         *slog.Logger
}

func NewTrackingHandler(workoutService service.WorkoutService, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{workoutService: workoutService, logger: logger}
}

// Calendar lists sessions between from and to, both inclusive dates. Without parameters it
// shows the current week.
// @Router /calendar [get]
func (h *TrackingHandler) Calendar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var from, to time.Time
	var err error
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse(dateLayout, s); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse(dateLayout, s); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = to.AddDate(0, 0, 1)
	}
	if !to.IsZero() && from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}
	entries, err := h.workoutService.Calendar(c.Request.Context(), userID, from, to)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Progress summarises the last N days (default 30).
// @Router /progress [get]
func (h *TrackingHandler) Progress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	days := 0
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid days")
			return
		}
		days = n
	}
	p, err := h.workoutService.Progress(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

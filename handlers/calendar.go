package handlers

import (
	"net/http"
	"time"

	"slotwise/cron"
	"slotwise/models"
	"slotwise/services/calendar"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler exposes direct calendar operations, bypassing the agent.
type CalendarHandler struct {
	Engine    *calendar.Engine
	Reminders *cron.ReminderScheduler
}

func NewCalendarHandler(engine *calendar.Engine, reminders *cron.ReminderScheduler) *CalendarHandler {
	return &CalendarHandler{Engine: engine, Reminders: reminders}
}

// Availability handles POST /availability.
func (h *CalendarHandler) Availability(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability request", err.Error())
		return
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}

	result, err := h.Engine.Availability(c.Request.Context(), req.StartDate, req.EndDate,
		time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availability": result.Slots,
		"source":       result.Source,
	})
}

// Book handles POST /book.
func (h *CalendarHandler) Book(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}
	if _, err := calendar.ParseISO(req.StartTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start_time", err.Error())
		return
	}
	if _, err := calendar.ParseISO(req.EndTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end_time", err.Error())
		return
	}

	event, err := h.Engine.Provider().CreateEvent(c.Request.Context(),
		req.Title, req.Description, req.StartTime, req.EndTime, req.AttendeeEmail)
	if err != nil {
		utils.GetLogger().Error("booking failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to book appointment", err.Error())
		return
	}
	h.Reminders.ScheduleForEvent(event)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"event_id": event.ID,
		"event":    event,
	})
}

// Events handles GET /events?start_date&end_date.
func (h *CalendarHandler) Events(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing date range", "start_date and end_date are required")
		return
	}

	events, err := h.Engine.Provider().ListEvents(c.Request.Context(), startDate, endDate)
	if err != nil {
		utils.GetLogger().Error("listing events failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to list events", err.Error())
		return
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// DeleteEvent handles DELETE /events/:event_id.
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	eventID := c.Param("event_id")

	ok, err := h.Engine.Provider().DeleteEvent(c.Request.Context(), eventID)
	if err != nil {
		utils.GetLogger().Error("event deletion failed", zap.String("eventID", eventID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to delete event", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

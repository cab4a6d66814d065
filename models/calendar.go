package models

import "time"

// TimeSlot is a bookable window produced by the availability engine.
// Invariant: StartTime < EndTime.
type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// BusyInterval is an occupied window sourced from the calendar's event list.
// Read-only snapshot per query; never cached across calls.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// CalendarEvent mirrors what the calendar backend returns. Times stay as the
// ISO-8601 strings the backend hands out (all-day events carry a bare date).
type CalendarEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
}

// AvailabilityRequest is the payload for POST /availability.
type AvailabilityRequest struct {
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
}

// BookingRequest is the payload for POST /book.
type BookingRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description,omitempty"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	AttendeeEmail string `json:"attendee_email,omitempty"`
}

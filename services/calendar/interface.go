// Package calendar holds the calendar provider abstraction and the
// availability engine that turns busy intervals into bookable slots.
package calendar

import (
	"context"
	"fmt"

	"slotwise/models"
)

// Provider is the calendar backend the assistant books against. A provider
// may be degraded from the start (missing credentials, unreachable API);
// Available reports that state and every operation degrades gracefully
// instead of failing when it is false.
type Provider interface {
	// ListEvents returns events between two ISO-8601 dates. Returns an
	// empty list when the provider is unavailable.
	ListEvents(ctx context.Context, startDate, endDate string) ([]models.CalendarEvent, error)
	// CreateEvent books a new event. When the provider is unavailable a
	// synthetic mock event is returned instead of an error; a hard failure
	// on a live provider is returned as-is.
	CreateEvent(ctx context.Context, title, description, startTime, endTime, attendeeEmail string) (*models.CalendarEvent, error)
	// DeleteEvent removes an event by id. Mock events always delete
	// successfully.
	DeleteEvent(ctx context.Context, eventID string) (bool, error)
	// Available reports whether the real backend is reachable.
	Available() bool
}

// ProviderError is a typed failure from a live calendar operation.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewProviderError(msg string) error {
	return &ProviderError{
		Code:    "calendarError",
		Message: msg,
	}
}

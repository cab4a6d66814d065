package calendar

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleProvider talks to the Google Calendar API with service-account
// credentials. Construction never fails the process: without credentials or
// connectivity the provider comes up unavailable and every operation serves
// demo responses.
type GoogleProvider struct {
	svc        *gcal.Service
	calendarID string
	available  bool
}

// NewGoogleProvider authenticates against Google Calendar. Credentials come
// from GOOGLE_SERVICE_ACCOUNT_JSON_BASE64 when set (container deployments)
// or from the service-account key file otherwise.
func NewGoogleProvider(ctx context.Context, cfg config.Config) *GoogleProvider {
	logger := utils.GetLogger()
	p := &GoogleProvider{calendarID: cfg.GoogleCalendarID}

	svc, err := connect(ctx, cfg)
	if err != nil {
		logger.Warn("Google Calendar not available, running in demo mode", zap.Error(err))
		return p
	}

	p.svc = svc
	p.available = true
	logger.Info("Google Calendar service initialized", zap.String("calendarID", cfg.GoogleCalendarID))
	return p
}

func connect(ctx context.Context, cfg config.Config) (*gcal.Service, error) {
	if cfg.GoogleCalendarID == "" {
		return nil, fmt.Errorf("GOOGLE_CALENDAR_ID not set")
	}

	var creds option.ClientOption
	if cfg.GoogleServiceAccountJSONB64 != "" {
		raw, err := base64.StdEncoding.DecodeString(cfg.GoogleServiceAccountJSONB64)
		if err != nil {
			return nil, fmt.Errorf("decode base64 service account: %w", err)
		}
		creds = option.WithCredentialsJSON(raw)
	} else {
		creds = option.WithCredentialsFile(cfg.GoogleServiceAccountFile)
	}

	svc, err := gcal.NewService(ctx, creds, option.WithScopes(gcal.CalendarScope))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	// Verify the calendar is reachable and shared with the service account.
	if _, err := svc.Calendars.Get(cfg.GoogleCalendarID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("calendar %q unreachable: %w", cfg.GoogleCalendarID, err)
	}
	return svc, nil
}

func (p *GoogleProvider) Available() bool { return p.available }

func (p *GoogleProvider) ListEvents(ctx context.Context, startDate, endDate string) ([]models.CalendarEvent, error) {
	if !p.available {
		return []models.CalendarEvent{}, nil
	}

	timeMin, err := toRFC3339(startDate)
	if err != nil {
		return nil, err
	}
	timeMax, err := toRFC3339(endDate)
	if err != nil {
		return nil, err
	}

	resp, err := p.svc.Events.List(p.calendarID).
		TimeMin(timeMin).
		TimeMax(timeMax).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, NewProviderError(fmt.Sprintf("list events: %v", err))
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, toCalendarEvent(item))
	}
	return events, nil
}

func (p *GoogleProvider) CreateEvent(ctx context.Context, title, description, startTime, endTime, attendeeEmail string) (*models.CalendarEvent, error) {
	if !p.available {
		return mockEvent(title, description, startTime, endTime), nil
	}

	event := &gcal.Event{
		Summary:     title,
		Description: description,
		Start:       &gcal.EventDateTime{DateTime: startTime, TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: endTime, TimeZone: "UTC"},
	}
	if attendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: attendeeEmail}}
	}

	created, err := p.svc.Events.Insert(p.calendarID, event).Context(ctx).Do()
	if err != nil {
		// The provider claimed to be available; this is a hard failure and
		// must reach the caller rather than be masked as a mock booking.
		return nil, NewProviderError(fmt.Sprintf("create event: %v", err))
	}

	ev := toCalendarEvent(created)
	return &ev, nil
}

func (p *GoogleProvider) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	if !p.available {
		return true, nil
	}

	if err := p.svc.Events.Delete(p.calendarID, eventID).Context(ctx).Do(); err != nil {
		return false, NewProviderError(fmt.Sprintf("delete event %s: %v", eventID, err))
	}
	return true, nil
}

// mockEvent synthesizes a booking when the calendar is not connected.
func mockEvent(title, description, startTime, endTime string) *models.CalendarEvent {
	return &models.CalendarEvent{
		ID:          fmt.Sprintf("mock_event_%d", time.Now().Unix()),
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
	}
}

// toRFC3339 renders a client-supplied ISO date for the events query. The
// wall clock is kept and suffixed as UTC, matching how busy intervals are
// compared (zone-stripped).
func toRFC3339(value string) (string, error) {
	t, err := ParseISO(value)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02T15:04:05") + "Z", nil
}

func toCalendarEvent(item *gcal.Event) models.CalendarEvent {
	ev := models.CalendarEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
	}
	if ev.Title == "" {
		ev.Title = "No Title"
	}
	if item.Start != nil {
		ev.StartTime = item.Start.DateTime
		if ev.StartTime == "" {
			ev.StartTime = item.Start.Date
		}
	}
	if item.End != nil {
		ev.EndTime = item.End.DateTime
		if ev.EndTime == "" {
			ev.EndTime = item.End.Date
		}
	}
	for _, a := range item.Attendees {
		ev.Attendees = append(ev.Attendees, a.Email)
	}
	return ev
}

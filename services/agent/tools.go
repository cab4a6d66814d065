package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotwise/cron"
	"slotwise/services/calendar"
)

const (
	toolCheckAvailability = "check_availability"
	toolBookAppointment   = "book_appointment"
	toolGetExistingEvents = "get_existing_events"

	slotTimeLayout = "Monday, January 02 at 03:04 PM"
	demoNote       = "\n\nNote: showing demo data (calendar not connected)"

	invalidBookingMsg = "Invalid booking format. Please provide: title|description|start_time|end_time|email"
)

// Tool is a named capability the model can invoke. Run takes free text and
// returns free text; failures come back as descriptive strings, never as
// errors, because the model only sees text.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, input string) string
}

// Toolbox adapts the availability engine and calendar provider into the
// agent's three tools.
type Toolbox struct {
	engine    *calendar.Engine
	reminders *cron.ReminderScheduler
	now       func() time.Time
}

func NewToolbox(engine *calendar.Engine, reminders *cron.ReminderScheduler) *Toolbox {
	return &Toolbox{engine: engine, reminders: reminders, now: time.Now}
}

// Tools returns the adapter's tools in prompt order.
func (tb *Toolbox) Tools() []Tool {
	return []Tool{
		{
			Name:        toolCheckAvailability,
			Description: "Check calendar availability for booking appointments. Input: '<start_date> to <end_date>' (ISO dates).",
			Run:         tb.checkAvailability,
		},
		{
			Name:        toolBookAppointment,
			Description: "Book a new appointment. Format: title|description|start_time|end_time|email",
			Run:         tb.bookAppointment,
		},
		{
			Name:        toolGetExistingEvents,
			Description: "Fetch existing events from calendar for a given date range. Input: '<start_date> to <end_date>'.",
			Run:         tb.getExistingEvents,
		},
	}
}

type dateRange struct {
	start string
	end   string
}

var errNoDateRange = errors.New(`input does not contain a "<start> to <end>" range`)

// parseDateRange extracts "<start> to <end>" from free text.
func parseDateRange(input string) (dateRange, error) {
	cleaned := strings.NewReplacer(`"`, "", `'`, "").Replace(strings.TrimSpace(input))
	if strings.Contains(cleaned, " to ") {
		parts := strings.SplitN(cleaned, " to ", 2)
		start := strings.TrimSpace(parts[0])
		end := strings.TrimSpace(parts[1])
		if start != "" && end != "" {
			return dateRange{start: start, end: end}, nil
		}
	}
	return dateRange{}, errNoDateRange
}

// defaultRange is the next seven days, used when the model supplies no
// recognizable range.
func (tb *Toolbox) defaultRange() dateRange {
	today := tb.now()
	return dateRange{
		start: today.Format("2006-01-02"),
		end:   today.AddDate(0, 0, 7).Format("2006-01-02"),
	}
}

func (tb *Toolbox) rangeOrDefault(input string) dateRange {
	rng, err := parseDateRange(input)
	if err != nil {
		return tb.defaultRange()
	}
	return rng
}

func (tb *Toolbox) checkAvailability(ctx context.Context, input string) string {
	rng := tb.rangeOrDefault(input)

	result, err := tb.engine.Availability(ctx, rng.start, rng.end, time.Hour)
	if err != nil {
		return fmt.Sprintf("Error checking availability: %v", err)
	}
	if len(result.Slots) == 0 {
		return "No available slots found for the specified date range."
	}

	var sb strings.Builder
	sb.WriteString("Available time slots:\n")
	for i, slot := range result.Slots {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, slot.StartTime.Format(slotTimeLayout))
	}
	if result.Source == calendar.SourceDemo {
		sb.WriteString(demoNote)
	}
	return sb.String()
}

func (tb *Toolbox) bookAppointment(ctx context.Context, input string) string {
	parts := strings.Split(input, "|")
	if len(parts) < 4 {
		return invalidBookingMsg
	}

	title := strings.TrimSpace(parts[0])
	description := strings.TrimSpace(parts[1])
	startTime := padMidnight(strings.TrimSpace(parts[2]))
	endTime := padMidnight(strings.TrimSpace(parts[3]))
	var email string
	if len(parts) > 4 {
		email = strings.TrimSpace(parts[4])
	}

	// Both timestamps must parse before anything is created.
	if _, err := calendar.ParseISO(startTime); err != nil {
		return fmt.Sprintf("Error booking appointment: %v", err)
	}
	if _, err := calendar.ParseISO(endTime); err != nil {
		return fmt.Sprintf("Error booking appointment: %v", err)
	}

	provider := tb.engine.Provider()
	event, err := provider.CreateEvent(ctx, title, description, startTime, endTime, email)
	if err != nil {
		return fmt.Sprintf("Error booking appointment: %v", err)
	}
	tb.reminders.ScheduleForEvent(event)

	msg := fmt.Sprintf("Appointment booked successfully! Event ID: %s", event.ID)
	if !provider.Available() {
		msg += demoNote
	}
	return msg
}

func (tb *Toolbox) getExistingEvents(ctx context.Context, input string) string {
	rng := tb.rangeOrDefault(input)

	provider := tb.engine.Provider()
	events, err := provider.ListEvents(ctx, rng.start, rng.end)
	if err != nil {
		return fmt.Sprintf("Error getting events: %v", err)
	}
	if len(events) == 0 {
		msg := "No existing events found for the specified date range."
		if !provider.Available() {
			msg += demoNote
		}
		return msg
	}

	var sb strings.Builder
	sb.WriteString("Existing events:\n")
	for _, ev := range events {
		when := ev.StartTime
		if t, err := calendar.ParseISO(strings.TrimSuffix(ev.StartTime, "Z")); err == nil {
			when = t.Format(slotTimeLayout)
		}
		fmt.Fprintf(&sb, "• %s - %s\n", ev.Title, when)
	}
	return sb.String()
}

// padMidnight appends a midnight time-of-day to bare dates.
func padMidnight(v string) string {
	if v != "" && !strings.Contains(v, "T") {
		return v + "T00:00:00"
	}
	return v
}

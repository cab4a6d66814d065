package calendar

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

const (
	// maxLiveSlots bounds the real computation's result.
	maxLiveSlots = 20
	// maxDemoSlots bounds the fallback generator's result.
	maxDemoSlots = 10
)

// demoHours are the fixed slot starts emitted by the fallback generator.
var demoHours = []int{9, 11, 14, 16}

// Source tells callers whether availability came from the live calendar or
// the synthetic fallback.
type Source string

const (
	SourceLive Source = "live"
	SourceDemo Source = "demo"
)

// AvailabilityResult carries the computed slots together with their origin,
// so callers can surface demo data honestly instead of passing it off as real.
type AvailabilityResult struct {
	Slots  []models.TimeSlot
	Source Source
	// Reason explains a demo result (provider unreachable, query failure).
	Reason string
}

// Hours is the daily window candidate slots are generated in. Start is the
// first slot hour; End is exclusive.
type Hours struct {
	Start int
	End   int
}

// Engine computes free slots against a calendar provider, degrading to
// deterministic demo data when the provider cannot answer.
type Engine struct {
	provider Provider
	hours    Hours
}

func NewEngine(provider Provider, hours Hours) *Engine {
	if hours.Start <= 0 && hours.End <= 0 {
		hours = Hours{Start: 9, End: 17}
	}
	return &Engine{provider: provider, hours: hours}
}

// Availability returns free slots of the given duration between two ISO
// dates (inclusive). Provider unavailability or a mid-query failure yields
// demo data rather than an error; only unparsable input fails.
func (e *Engine) Availability(ctx context.Context, startDate, endDate string, duration time.Duration) (AvailabilityResult, error) {
	start, err := ParseISO(startDate)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("start date: %w", err)
	}
	end, err := ParseISO(endDate)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("end date: %w", err)
	}

	if !e.provider.Available() {
		return AvailabilityResult{
			Slots:  MockAvailability(start, end, duration),
			Source: SourceDemo,
			Reason: "calendar not connected",
		}, nil
	}

	events, err := e.provider.ListEvents(ctx, startDate, endDate)
	if err != nil {
		// Availability over correctness: a failing provider mid-query
		// degrades to demo data instead of propagating.
		utils.GetLogger().Warn("availability query degraded to demo data", zap.Error(err))
		return AvailabilityResult{
			Slots:  MockAvailability(start, end, duration),
			Source: SourceDemo,
			Reason: "calendar query failed",
		}, nil
	}

	busy := busyIntervals(events)
	return AvailabilityResult{
		Slots:  ComputeAvailability(start, end, duration, busy, e.hours),
		Source: SourceLive,
	}, nil
}

// Provider exposes the wrapped provider for callers that need direct event
// operations alongside availability.
func (e *Engine) Provider() Provider { return e.provider }

// ComputeAvailability generates hourly candidate slots on weekdays within
// [start, end] (by calendar date, inclusive) and keeps those that do not
// overlap any busy interval. Overlap is half-open: touching endpoints do
// not conflict. At most 20 slots are returned, chronologically.
func ComputeAvailability(start, end time.Time, duration time.Duration, busy []models.BusyInterval, hours Hours) []models.TimeSlot {
	var slots []models.TimeSlot

	endDay := dateOf(end)
	for day := dateOf(start); !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		for hour := hours.Start; hour < hours.End; hour++ {
			slotStart := slotAt(day, hour)
			slotEnd := slotStart.Add(duration)

			if overlapsAny(slotStart, slotEnd, busy) {
				continue
			}
			slots = append(slots, models.TimeSlot{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Available: true,
			})
			if len(slots) >= maxLiveSlots {
				return slots
			}
		}
	}
	return slots
}

// MockAvailability is the deterministic fallback used when the calendar
// cannot answer: a few fixed slots per weekday, capped at 10.
func MockAvailability(start, end time.Time, duration time.Duration) []models.TimeSlot {
	var slots []models.TimeSlot

	endDay := dateOf(end)
	for day := dateOf(start); !day.After(endDay) && len(slots) < maxDemoSlots; day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}
		for _, hour := range demoHours {
			slotStart := slotAt(day, hour)
			slots = append(slots, models.TimeSlot{
				StartTime: slotStart,
				EndTime:   slotStart.Add(duration),
				Available: true,
			})
		}
	}
	if len(slots) > maxDemoSlots {
		slots = slots[:maxDemoSlots]
	}
	return slots
}

// slotAt pins a candidate start to the wall-clock hour. Adding absolute
// hours to midnight would shift slots on DST-transition days.
func slotAt(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

func overlapsAny(slotStart, slotEnd time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if slotStart.Before(b.End) && slotEnd.After(b.Start) {
			return true
		}
	}
	return false
}

// busyIntervals converts provider events into comparable intervals,
// stripping timezone offsets (see StripZone). Events whose timestamps do
// not parse are skipped rather than failing the whole computation.
func busyIntervals(events []models.CalendarEvent) []models.BusyInterval {
	busy := make([]models.BusyInterval, 0, len(events))
	for _, ev := range events {
		start, err := ParseISO(ev.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseISO(ev.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, models.BusyInterval{Start: StripZone(start), End: StripZone(end)})
	}
	return busy
}

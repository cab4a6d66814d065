package calendar

import (
	"context"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-03 is a Monday.
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local)

func busyAt(day time.Time, startHour, startMin, endHour, endMin int) models.BusyInterval {
	return models.BusyInterval{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestComputeAvailabilityFullBusinessDay(t *testing.T) {
	slots := ComputeAvailability(monday, monday, time.Hour, nil, Hours{Start: 9, End: 17})

	require.Len(t, slots, 8)
	for i, slot := range slots {
		assert.Equal(t, monday.Add(time.Duration(9+i)*time.Hour), slot.StartTime)
		assert.Equal(t, slot.StartTime.Add(time.Hour), slot.EndTime)
		assert.True(t, slot.Available)
		assert.True(t, slot.StartTime.Before(slot.EndTime))
	}
}

func TestComputeAvailabilityOverlapExclusion(t *testing.T) {
	busy := []models.BusyInterval{busyAt(monday, 9, 30, 10, 30)}
	slots := ComputeAvailability(monday, monday, time.Hour, busy, Hours{Start: 9, End: 17})

	starts := make([]int, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.StartTime.Hour())
	}
	// The 9:00 and 10:00 slots both overlap [9:30, 10:30); 11:00 survives.
	assert.NotContains(t, starts, 9)
	assert.NotContains(t, starts, 10)
	assert.Contains(t, starts, 11)
	assert.Len(t, slots, 6)
}

func TestComputeAvailabilityAdjacentIntervalsDoNotConflict(t *testing.T) {
	// Busy [10:00, 11:00): the 9:00-10:00 and 11:00-12:00 slots touch it
	// exactly and must stay available.
	busy := []models.BusyInterval{busyAt(monday, 10, 0, 11, 0)}
	slots := ComputeAvailability(monday, monday, time.Hour, busy, Hours{Start: 9, End: 17})

	starts := map[int]bool{}
	for _, s := range slots {
		starts[s.StartTime.Hour()] = true
	}
	assert.True(t, starts[9])
	assert.False(t, starts[10])
	assert.True(t, starts[11])
}

func TestComputeAvailabilityConflictShapes(t *testing.T) {
	slot9 := func(slots []models.TimeSlot) bool {
		for _, s := range slots {
			if s.StartTime.Hour() == 9 {
				return true
			}
		}
		return false
	}

	cases := map[string]models.BusyInterval{
		"contains":      busyAt(monday, 8, 0, 11, 0),
		"overlapsLeft":  busyAt(monday, 8, 30, 9, 30),
		"overlapsRight": busyAt(monday, 9, 30, 10, 30),
		"exactMatch":    busyAt(monday, 9, 0, 10, 0),
	}
	for name, busy := range cases {
		t.Run(name, func(t *testing.T) {
			slots := ComputeAvailability(monday, monday, time.Hour, []models.BusyInterval{busy}, Hours{Start: 9, End: 17})
			assert.False(t, slot9(slots), "9:00 slot should conflict")
		})
	}
}

func TestComputeAvailabilitySkipsWeekends(t *testing.T) {
	saturday := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	sunday := saturday.AddDate(0, 0, 1)

	slots := ComputeAvailability(saturday, sunday, time.Hour, nil, Hours{Start: 9, End: 17})
	assert.Empty(t, slots)
}

func TestComputeAvailabilityTruncatesAtTwenty(t *testing.T) {
	// A full month has far more than 20 weekday slots.
	end := monday.AddDate(0, 1, 0)
	slots := ComputeAvailability(monday, end, time.Hour, nil, Hours{Start: 9, End: 17})

	assert.Len(t, slots, 20)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartTime.Before(slots[i].StartTime), "slots must be chronological")
	}
}

func TestComputeAvailabilityDurationLongerThanWindow(t *testing.T) {
	// A 10-hour meeting starting at or before noon overlaps the midday
	// busy block; starts at or after its end stay available because no
	// window-end check exists.
	busy := []models.BusyInterval{busyAt(monday, 12, 0, 13, 0)}
	slots := ComputeAvailability(monday, monday, 10*time.Hour, busy, Hours{Start: 9, End: 17})

	require.Len(t, slots, 4)
	for i, s := range slots {
		assert.Equal(t, 13+i, s.StartTime.Hour())
	}
}

func TestComputeAvailabilityFullyBookedDay(t *testing.T) {
	busy := []models.BusyInterval{busyAt(monday, 9, 0, 17, 0)}
	slots := ComputeAvailability(monday, monday, time.Hour, busy, Hours{Start: 9, End: 17})
	assert.Empty(t, slots)
}

func TestComputeAvailabilityWallClockOnDSTTransitionDay(t *testing.T) {
	// Jordan's spring-forward used to fall at midnight on the last Friday
	// of March, a weekday: 2018-03-30 has no 00:00, so adding absolute
	// hours to the day's start would shift every slot forward an hour.
	loc, err := time.LoadLocation("Asia/Amman")
	if err != nil {
		t.Skip("tzdata not available")
	}
	day := time.Date(2018, 3, 30, 0, 0, 0, 0, loc)

	slots := ComputeAvailability(day, day, time.Hour, nil, Hours{Start: 9, End: 17})

	require.Len(t, slots, 8)
	for i, s := range slots {
		assert.Equal(t, 9+i, s.StartTime.Hour())
	}
}

func TestMockAvailabilityDeterministicAndCapped(t *testing.T) {
	end := monday.AddDate(0, 0, 14)

	first := MockAvailability(monday, end, time.Hour)
	second := MockAvailability(monday, end, time.Hour)

	assert.Equal(t, first, second)
	assert.Len(t, first, 10)

	// Fixed demo hours only.
	allowed := map[int]bool{9: true, 11: true, 14: true, 16: true}
	for _, s := range first {
		assert.True(t, allowed[s.StartTime.Hour()], "unexpected demo hour %d", s.StartTime.Hour())
		wd := s.StartTime.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestMockAvailabilityWeekendOnlyRange(t *testing.T) {
	saturday := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	slots := MockAvailability(saturday, saturday.AddDate(0, 0, 1), time.Hour)
	assert.Empty(t, slots)
}

type stubProvider struct {
	available bool
	events    []models.CalendarEvent
	listErr   error
}

func (s *stubProvider) ListEvents(context.Context, string, string) ([]models.CalendarEvent, error) {
	return s.events, s.listErr
}

func (s *stubProvider) CreateEvent(_ context.Context, title, description, start, end, _ string) (*models.CalendarEvent, error) {
	return &models.CalendarEvent{ID: "evt_1", Title: title, Description: description, StartTime: start, EndTime: end}, nil
}

func (s *stubProvider) DeleteEvent(context.Context, string) (bool, error) { return true, nil }

func (s *stubProvider) Available() bool { return s.available }

func TestEngineAvailabilityLive(t *testing.T) {
	provider := &stubProvider{
		available: true,
		events: []models.CalendarEvent{
			{ID: "e1", Title: "Standup", StartTime: "2024-06-03T09:30:00", EndTime: "2024-06-03T10:30:00"},
		},
	}
	engine := NewEngine(provider, Hours{Start: 9, End: 17})

	result, err := engine.Availability(context.Background(), "2024-06-03", "2024-06-03", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, SourceLive, result.Source)
	assert.Len(t, result.Slots, 6)
}

func TestEngineAvailabilityDegradesWhenUnavailable(t *testing.T) {
	engine := NewEngine(&stubProvider{available: false}, Hours{Start: 9, End: 17})

	result, err := engine.Availability(context.Background(), "2024-06-03", "2024-06-07", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, SourceDemo, result.Source)
	assert.NotEmpty(t, result.Reason)
	assert.Len(t, result.Slots, 10)
}

func TestEngineAvailabilityDegradesOnProviderError(t *testing.T) {
	provider := &stubProvider{available: true, listErr: NewProviderError("boom")}
	engine := NewEngine(provider, Hours{Start: 9, End: 17})

	result, err := engine.Availability(context.Background(), "2024-06-03", "2024-06-07", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, SourceDemo, result.Source)
	assert.Len(t, result.Slots, 10)
}

func TestEngineAvailabilityRejectsBadDates(t *testing.T) {
	engine := NewEngine(&stubProvider{available: true}, Hours{Start: 9, End: 17})

	_, err := engine.Availability(context.Background(), "not-a-date", "2024-06-07", time.Hour)
	assert.Error(t, err)
}

func TestStripZoneKeepsWallClock(t *testing.T) {
	withOffset, err := time.Parse(time.RFC3339, "2024-06-03T09:30:00+05:00")
	require.NoError(t, err)

	stripped := StripZone(withOffset)
	assert.Equal(t, 9, stripped.Hour())
	assert.Equal(t, 30, stripped.Minute())
	assert.Equal(t, time.Local, stripped.Location())
}

func TestParseISOVariants(t *testing.T) {
	for _, v := range []string{"2024-06-03", "2024-06-03T14:30", "2024-06-03T14:30:00", "2024-06-03T14:30:00Z"} {
		_, err := ParseISO(v)
		assert.NoError(t, err, v)
	}
	_, err := ParseISO("June 3rd")
	assert.Error(t, err)
}

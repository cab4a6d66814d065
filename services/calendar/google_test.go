package calendar

import (
	"context"
	"strings"
	"testing"

	"slotwise/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without GOOGLE_CALENDAR_ID the provider must come up in demo mode and
// serve synthetic responses instead of failing.
func TestGoogleProviderDemoMode(t *testing.T) {
	ctx := context.Background()
	p := NewGoogleProvider(ctx, config.Config{})

	require.False(t, p.Available())

	events, err := p.ListEvents(ctx, "2024-06-03", "2024-06-10")
	require.NoError(t, err)
	assert.Empty(t, events)

	ev, err := p.CreateEvent(ctx, "Standup", "Daily sync", "2024-06-03T09:00:00", "2024-06-03T10:00:00", "a@b.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ev.ID, "mock_event_"), "mock booking id, got %q", ev.ID)
	assert.Equal(t, "Standup", ev.Title)

	ok, err := p.DeleteEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestToRFC3339(t *testing.T) {
	out, err := toRFC3339("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03T00:00:00Z", out)

	_, err = toRFC3339("tomorrow")
	assert.Error(t, err)
}

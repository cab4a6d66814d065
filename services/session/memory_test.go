package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	require.NoError(t, store.AppendExchange(ctx, "a", "q1", "a1"))
	require.NoError(t, store.AppendExchange(ctx, "a", "q2", "a2"))

	turns, err := store.History(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, models.Turn{Role: models.RoleUser, Text: "q1"}, turns[0])
	assert.Equal(t, models.Turn{Role: models.RoleAssistant, Text: "a2"}, turns[3])
}

func TestMemoryStoreHistoryLimit(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendExchange(ctx, "a", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
	}

	turns, err := store.History(ctx, "a", 6)
	require.NoError(t, err)
	require.Len(t, turns, 6)
	// The last six turns are q2..a4.
	assert.Equal(t, "q2", turns[0].Text)
	assert.Equal(t, "a4", turns[5].Text)
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore(10)

	turns, err := store.History(context.Background(), "nope", 6)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, store.AppendExchange(ctx, "a", "qa", "aa"))
	require.NoError(t, store.AppendExchange(ctx, "b", "qb", "ab"))

	// Touch "a" so "b" becomes the eviction candidate.
	_, err := store.History(ctx, "a", 10)
	require.NoError(t, err)

	require.NoError(t, store.AppendExchange(ctx, "c", "qc", "ac"))
	assert.Equal(t, 2, store.Len())

	turns, err := store.History(ctx, "b", 10)
	require.NoError(t, err)
	assert.Empty(t, turns, "least recently used session should be evicted")

	turns, err = store.History(ctx, "a", 10)
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", i%10)
			_ = store.AppendExchange(ctx, id, "q", "a")
			_, _ = store.History(ctx, id, 6)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}

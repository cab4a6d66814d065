// Package session persists per-session conversation transcripts.
package session

import (
	"context"

	"slotwise/models"
)

// Store keeps ordered transcripts keyed by session id. Implementations must
// be safe for concurrent use across sessions; callers serialize writes to a
// single session.
type Store interface {
	// History returns up to the last n turns of a session, oldest first.
	// An unknown session id yields an empty history, not an error.
	History(ctx context.Context, sessionID string, n int) ([]models.Turn, error)
	// AppendExchange commits one user turn and one assistant turn.
	AppendExchange(ctx context.Context, sessionID, userText, assistantText string) error
}

func lastN(turns []models.Turn, n int) []models.Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

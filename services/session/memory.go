package session

import (
	"container/list"
	"context"
	"sync"

	"slotwise/models"
)

// MemoryStore is the in-process fallback used when redis is not configured.
// It is bounded: once maxSessions transcripts exist, the least recently
// used session is evicted.
type MemoryStore struct {
	mu          sync.Mutex
	maxSessions int
	sessions    map[string]*list.Element
	order       *list.List // front = most recently used
}

type memorySession struct {
	id    string
	turns []models.Turn
}

func NewMemoryStore(maxSessions int) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	return &MemoryStore{
		maxSessions: maxSessions,
		sessions:    make(map[string]*list.Element),
		order:       list.New(),
	}
}

func (s *MemoryStore) History(_ context.Context, sessionID string, n int) ([]models.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	s.order.MoveToFront(elem)

	turns := lastN(elem.Value.(*memorySession).turns, n)
	out := make([]models.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) AppendExchange(_ context.Context, sessionID, userText, assistantText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.sessions[sessionID]
	if !ok {
		elem = s.order.PushFront(&memorySession{id: sessionID})
		s.sessions[sessionID] = elem
		s.evictLocked()
	} else {
		s.order.MoveToFront(elem)
	}

	sess := elem.Value.(*memorySession)
	sess.turns = append(sess.turns,
		models.Turn{Role: models.RoleUser, Text: userText},
		models.Turn{Role: models.RoleAssistant, Text: assistantText},
	)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) evictLocked() {
	for len(s.sessions) > s.maxSessions {
		oldest := s.order.Back()
		if oldest == nil {
			return
		}
		s.order.Remove(oldest)
		delete(s.sessions, oldest.Value.(*memorySession).id)
	}
}

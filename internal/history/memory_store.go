package history

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps turns in memory, bounded per session. Default store for
// development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]Turn
	depth int
}

// NewMemoryStore creates a store keeping the last depth turns per session.
func NewMemoryStore(depth int) *MemoryStore {
	if depth <= 0 {
		depth = 3
	}
	return &MemoryStore{
		turns: make(map[string][]Turn),
		depth: depth,
	}
}

// Append records a turn and evicts beyond the depth bound.
func (s *MemoryStore) Append(ctx context.Context, turn Turn) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.turns[turn.SessionID]
	turn.TurnIndex = nextIndex(existing)
	if turn.AskedAt.IsZero() {
		turn.AskedAt = time.Now().UTC()
	}

	existing = append(existing, turn)
	if len(existing) > s.depth {
		existing = existing[len(existing)-s.depth:]
	}
	s.turns[turn.SessionID] = existing
	return turn, nil
}

// Recent returns up to limit turns, most recent first.
func (s *MemoryStore) Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := s.turns[sessionID]
	if limit <= 0 || limit > len(existing) {
		limit = len(existing)
	}

	out := make([]Turn, 0, limit)
	for i := len(existing) - 1; i >= len(existing)-limit; i-- {
		out = append(out, existing[i])
	}
	return out, nil
}

// SetAnswer records the answer text on an existing turn.
func (s *MemoryStore) SetAnswer(ctx context.Context, sessionID string, turnIndex int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns[sessionID]
	for i := range turns {
		if turns[i].TurnIndex == turnIndex {
			turns[i].AnswerText = answer
			return nil
		}
	}
	return ErrSessionNotFound
}

// Clear drops the session's turns.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, sessionID)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func nextIndex(turns []Turn) int {
	if len(turns) == 0 {
		return 1
	}
	return turns[len(turns)-1].TurnIndex + 1
}

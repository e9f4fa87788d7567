package memory

import (
	"context"
	"sync"

	mem "github.com/mcparena/arena-go/domain/memory"
)

// ConversationStore keeps a bounded conversation history in memory.
// When the history is full, adding a turn evicts exactly the oldest
// whole turn.
type ConversationStore struct {
	mu         sync.RWMutex
	turns      []mem.Turn
	maxHistory int
}

// NewConversationStore creates a store that retains at most maxHistory
// turns. A non-positive maxHistory defaults to 50.
func NewConversationStore(maxHistory int) *ConversationStore {
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &ConversationStore{
		maxHistory: maxHistory,
	}
}

// AddTurn appends a turn, evicting the oldest one when full.
func (s *ConversationStore) AddTurn(_ context.Context, turn mem.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.turns) >= s.maxHistory {
		s.turns = s.turns[1:]
	}
	s.turns = append(s.turns, turn)
	return nil
}

// RecentContext returns the last n turns in chronological order. Asking
// for more turns than stored returns everything.
func (s *ConversationStore) RecentContext(_ context.Context, n int) ([]mem.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil, nil
	}
	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}
	recent := make([]mem.Turn, len(s.turns)-start)
	copy(recent, s.turns[start:])
	return recent, nil
}

// Len returns the number of stored turns.
func (s *ConversationStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.turns), nil
}

// Clear removes all turns.
func (s *ConversationStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
	return nil
}

// Package memory provides contracts for persisting context across
// process calls and turns. Backends are shared by reference across
// concurrent runs and must be internally synchronized.
package memory

import (
	"context"
	"time"
)

// Store is a simple key-value memory with no ordering and no TTL.
type Store interface {
	// Store writes a value under the given key.
	Store(ctx context.Context, key string, value []byte) error

	// Retrieve reads the value for the given key.
	// Fails with ErrNotFound if the key is absent.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// Turn is one completed user/agent exchange.
type Turn struct {
	UserInput     string         `json:"user_input"`
	AgentResponse string         `json:"agent_response"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Conversation is a bounded, ordered turn history. Insertion beyond
// capacity evicts exactly the oldest turn (strict FIFO, whole turns only).
type Conversation interface {
	// AddTurn appends a turn, evicting the oldest when at capacity.
	AddTurn(ctx context.Context, turn Turn) error

	// RecentContext returns the last n turns in original order, fewer if
	// the history is shorter. It never fails on short histories.
	RecentContext(ctx context.Context, n int) ([]Turn, error)

	// Len returns the number of retained turns.
	Len(ctx context.Context) (int, error)

	// Clear removes all turns.
	Clear(ctx context.Context) error
}

// Episode is a discrete record of a past experience.
type Episode struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Outcome   string    `json:"outcome"`
	ToolsUsed []string  `json:"tools_used,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Episodic stores episodes and supports relevance search over content.
type Episodic interface {
	// AddEpisode stores an episode and returns its generated id.
	// Id generation is collision-free under concurrent calls.
	AddEpisode(ctx context.Context, e Episode) (string, error)

	// GetEpisode retrieves an episode by id.
	// Fails with ErrNotFound if absent.
	GetEpisode(ctx context.Context, id string) (Episode, error)

	// SearchEpisodes returns up to limit episodes ordered by descending
	// relevance to the query.
	SearchEpisodes(ctx context.Context, query string, limit int) ([]Episode, error)

	// Clear removes all episodes.
	Clear(ctx context.Context) error
}

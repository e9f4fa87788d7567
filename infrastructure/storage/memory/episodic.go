package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	mem "github.com/mcparena/arena-go/domain/memory"
)

// EpisodicStore holds past run episodes in memory and supports lexical
// similarity search over their content.
type EpisodicStore struct {
	mu       sync.RWMutex
	episodes map[string]mem.Episode
}

// NewEpisodicStore creates an empty episodic store.
func NewEpisodicStore() *EpisodicStore {
	return &EpisodicStore{
		episodes: make(map[string]mem.Episode),
	}
}

// AddEpisode stores an episode and returns its assigned id. Ids are
// unique under concurrent insertion.
func (s *EpisodicStore) AddEpisode(_ context.Context, episode mem.Episode) (string, error) {
	if episode.ID == "" {
		episode.ID = uuid.NewString()
	}
	if episode.Timestamp.IsZero() {
		episode.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.episodes[episode.ID] = episode
	return episode.ID, nil
}

// GetEpisode retrieves an episode by id.
func (s *EpisodicStore) GetEpisode(_ context.Context, id string) (mem.Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	episode, ok := s.episodes[id]
	if !ok {
		return mem.Episode{}, fmt.Errorf("%w: episode %s", mem.ErrNotFound, id)
	}
	return episode, nil
}

// SearchEpisodes returns up to limit episodes ordered by descending
// relevance to the query. Episodes with no term overlap are excluded.
func (s *EpisodicStore) SearchEpisodes(_ context.Context, query string, limit int) ([]mem.Episode, error) {
	queryTerms := tokenize(query)
	if len(queryTerms) == 0 || limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		episode mem.Episode
		score   float64
	}

	matches := make([]scored, 0, len(s.episodes))
	for _, episode := range s.episodes {
		score := overlapScore(queryTerms, tokenize(episode.Content+" "+episode.Outcome))
		if score > 0 {
			matches = append(matches, scored{episode: episode, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].episode.Timestamp.After(matches[j].episode.Timestamp)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]mem.Episode, len(matches))
	for i, m := range matches {
		results[i] = m.episode
	}
	return results, nil
}

// Clear removes all episodes.
func (s *EpisodicStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.episodes = make(map[string]mem.Episode)
	return nil
}

// tokenize lowercases and splits text into unique terms.
func tokenize(text string) map[string]bool {
	terms := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) > 1 {
			terms[word] = true
		}
	}
	return terms
}

// overlapScore is the fraction of query terms present in the document.
func overlapScore(query, doc map[string]bool) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for term := range query {
		if doc[term] {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	mem "github.com/mcparena/arena-go/domain/memory"
)

// ConversationStore keeps conversation turns in a Redis list. Turns are
// appended to the tail, and the list is trimmed to the configured cap
// so the oldest turn falls off first.
type ConversationStore struct {
	client     *redis.Client
	keyPrefix  string
	maxHistory int
}

// NewConversationStore connects to Redis and verifies the connection.
func NewConversationStore(cfg Config, opts ...ConfigOption) (*ConversationStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 50
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(mem.ErrConnectionFailed, err)
	}

	return &ConversationStore{
		client:     client,
		keyPrefix:  cfg.KeyPrefix,
		maxHistory: cfg.MaxHistory,
	}, nil
}

// NewConversationStoreFromClient wraps an existing Redis client.
func NewConversationStoreFromClient(client *redis.Client, keyPrefix string, maxHistory int) *ConversationStore {
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &ConversationStore{
		client:     client,
		keyPrefix:  keyPrefix,
		maxHistory: maxHistory,
	}
}

func (s *ConversationStore) key() string {
	return s.keyPrefix + "conversation"
}

// AddTurn appends a turn and trims the history to the cap.
func (s *ConversationStore) AddTurn(ctx context.Context, turn mem.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key(), data)
	pipe.LTrim(ctx, s.key(), int64(-s.maxHistory), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return s.wrapError(err)
	}
	return nil
}

// RecentContext returns the last n turns in chronological order.
func (s *ConversationStore) RecentContext(ctx context.Context, n int) ([]mem.Turn, error) {
	if n <= 0 {
		return nil, nil
	}

	raw, err := s.client.LRange(ctx, s.key(), int64(-n), -1).Result()
	if err != nil {
		return nil, s.wrapError(err)
	}

	turns := make([]mem.Turn, 0, len(raw))
	for _, item := range raw {
		var turn mem.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Len returns the number of stored turns.
func (s *ConversationStore) Len(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.key()).Result()
	if err != nil {
		return 0, s.wrapError(err)
	}
	return int(n), nil
}

// Clear removes the conversation history.
func (s *ConversationStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return s.wrapError(err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (s *ConversationStore) Close() error {
	return s.client.Close()
}

func (s *ConversationStore) wrapError(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return errors.Join(mem.ErrConnectionFailed, err)
	}
	return err
}

package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	mem "github.com/mcparena/arena-go/domain/memory"
)

// KVStore is a BadgerDB-backed implementation of memory.Store.
type KVStore struct {
	db        *badger.DB
	keyPrefix string
}

// NewKVStore opens a BadgerDB database for key-value memory.
func NewKVStore(cfg Config, opts ...Option) (*KVStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	return &KVStore{
		db:        db,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// NewKVStoreFromDB wraps an existing BadgerDB database.
func NewKVStoreFromDB(db *badger.DB, keyPrefix string) *KVStore {
	return &KVStore{
		db:        db,
		keyPrefix: keyPrefix,
	}
}

func (s *KVStore) prefixKey(key string) []byte {
	return []byte(s.keyPrefix + "kv:" + key)
}

// Store saves a value under key, overwriting any previous value.
func (s *KVStore) Store(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return mem.ErrInvalidKey
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.prefixKey(key), value)
	})
}

// Retrieve returns the value for key.
func (s *KVStore) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.prefixKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", mem.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.prefixKey(key))
	})
}

// Keys returns all stored keys without their namespace prefix.
func (s *KVStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(s.keyPrefix + "kv:")
	var keys []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			keys = append(keys, strings.TrimPrefix(key, string(prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Clear removes all entries in this store's namespace.
func (s *KVStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := []byte(s.keyPrefix + "kv:")
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var toDelete [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			toDelete = append(toDelete, it.Item().KeyCopy(nil))
		}
		for _, key := range toDelete {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the underlying database.
func (s *KVStore) Close() error {
	return s.db.Close()
}

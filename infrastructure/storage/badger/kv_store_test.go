package badger

import (
	"context"
	"errors"
	"testing"

	mem "github.com/mcparena/arena-go/domain/memory"
)

func newTestStore(t *testing.T) *KVStore {
	t.Helper()

	store, err := NewKVStore(DefaultConfig(), WithInMemory())
	if err != nil {
		t.Fatalf("NewKVStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestKVStore_StoreAndRetrieve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Store(ctx, "plan", []byte("step one")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := store.Retrieve(ctx, "plan")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if string(got) != "step one" {
		t.Errorf("Retrieve() = %q, want %q", got, "step one")
	}
}

func TestKVStore_RetrieveMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Retrieve(context.Background(), "absent")
	if !errors.Is(err, mem.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestKVStore_KeysAndClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := store.Store(ctx, k, []byte("v")); err != nil {
			t.Fatalf("Store(%q) error = %v", k, err)
		}
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("Keys() returned %d keys, want 3", len(keys))
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	keys, err = store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("Keys() after Clear returned %d keys, want 0", len(keys))
	}
}

func TestKVStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Store(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := store.Retrieve(ctx, "k")
	if !errors.Is(err, mem.ErrNotFound) {
		t.Errorf("Retrieve() after Delete error = %v, want ErrNotFound", err)
	}
}

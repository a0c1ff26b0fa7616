package cache_test

import (
	"testing"

	"tasktaskrevolution/internal/cache"
)

func TestPutThenGetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	type payload struct{ Value int }
	if err := store.Put("k1", "hash-a", payload{Value: 7}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out payload
	if !store.Get("k1", "hash-a", &out) {
		t.Fatal("expected cache hit")
	}
	if out.Value != 7 {
		t.Fatalf("got %d, want 7", out.Value)
	}
}

func TestGetMissesOnHashChange(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Put("k1", "hash-a", 1); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out int
	if store.Get("k1", "hash-b", &out) {
		t.Fatal("expected miss when content hash differs")
	}
}

func TestNilStoreIsSafeNoOp(t *testing.T) {
	var store *cache.Store
	var out int
	if store.Get("k", "h", &out) {
		t.Fatal("nil store should never hit")
	}
	if err := store.Put("k", "h", 1); err != nil {
		t.Fatalf("Put on nil store should be a no-op, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close on nil store should be a no-op, got %v", err)
	}
}

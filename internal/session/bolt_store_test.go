package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adda-Baaj/gamejolt-go/pkg/gamejolt"
)

func openTestStore(t *testing.T, opts Options) *boltStore {
	t.Helper()
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "nested", "sessions.db"), normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreRoundTripsSessions(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Hour})

	if _, err := store.Get("cros"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(gamejolt.Session{Username: "cros", Token: "tok1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(gamejolt.Session{Username: "guy", Token: "tok2"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get("cros")
	if err != nil || got.Token != "tok1" {
		t.Fatalf("Get cros = %+v, %v", got, err)
	}
	last, err := store.Last()
	if err != nil || last.Username != "guy" || last.Token != "tok2" {
		t.Fatalf("Last = %+v, %v", last, err)
	}

	if err := store.Delete("guy"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Last(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no last session after delete, got %v", err)
	}
	if _, err := store.Get("cros"); err != nil {
		t.Fatalf("unrelated session removed: %v", err)
	}
}

func TestBoltStoreDeleteTrimsUsername(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Hour})

	if err := store.Put(gamejolt.Session{Username: "bob", Token: "tok"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(" bob "); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected session removed, got %v", err)
	}
	if _, err := store.Last(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected last pointer cleared, got %v", err)
	}
}

func TestBoltStoreExpiresSessions(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Minute, CleanupInterval: time.Hour})
	base := time.Now()
	store.now = func() time.Time { return base }

	if err := store.Put(gamejolt.Session{Username: "cros", Token: "tok"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := store.Get("cros"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}

	// The expired entry was deleted, not just hidden.
	store.now = func() time.Time { return base }
	if _, err := store.Get("cros"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired entry still stored: %v", err)
	}
}

func TestBoltStoreSweepsOnCadence(t *testing.T) {
	store := openTestStore(t, Options{TTL: time.Minute, CleanupInterval: time.Minute})
	base := time.Now()
	store.now = func() time.Time { return base }
	if err := store.Put(gamejolt.Session{Username: "old", Token: "t"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	store.lastCleanup.Store(base.Add(-2 * time.Minute).Unix())
	store.now = func() time.Time { return base.Add(5 * time.Minute) }
	if err := store.Put(gamejolt.Session{Username: "new", Token: "t"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	store.now = func() time.Time { return base }
	if _, err := store.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("sweep did not remove expired session: %v", err)
	}
}

func TestBoltStoreRejectsIncompleteSession(t *testing.T) {
	store := openTestStore(t, Options{})
	if err := store.Put(gamejolt.Session{Username: "cros"}); err == nil {
		t.Fatalf("expected error for missing token")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.Put(gamejolt.Session{Username: "x", Token: "y"}); err != nil {
		t.Fatalf("noop store Put: %v", err)
	}
	if _, err := store.Last(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("noop store Last: %v", err)
	}
}

func TestNewStoreValidatesType(t *testing.T) {
	if _, err := NewStore("redis", "x", Options{}); err == nil {
		t.Fatalf("expected unsupported type error")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected missing path error")
	}
}

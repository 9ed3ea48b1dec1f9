package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "prchecklist-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	jsonStore, err := NewJSONFileStore(filepath.Join(dir, "nested", "state.json"))
	if err != nil {
		t.Fatalf("new json store: %v", err)
	}

	return map[string]Store{
		BackendSQLite: sqliteStore,
		BackendJSON:   jsonStore,
		BackendMemory: NewMemoryStore(),
	}
}

func TestStoreGetSetOverwrite(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got: %v", err)
			}
			if err := store.Set(ctx, "k", []byte(`{"v":1}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, "k", []byte(`{"v":2}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := store.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `{"v":2}` {
				t.Fatalf("unexpected value: %s", got)
			}
		})
	}
}

func TestStoreKeysAreListed(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			lister, ok := store.(KeyLister)
			if !ok {
				t.Fatalf("%s does not list keys", name)
			}
			ctx := context.Background()
			for _, k := range []string{"a", "b", "c"} {
				if err := store.Set(ctx, k, []byte(`{}`)); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}
			keys, err := lister.Keys(ctx, 0)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 3 {
				t.Fatalf("expected 3 keys, got %#v", keys)
			}
			limited, err := lister.Keys(ctx, 2)
			if err != nil {
				t.Fatalf("limited keys: %v", err)
			}
			if len(limited) != 2 {
				t.Fatalf("expected 2 keys with limit, got %#v", limited)
			}
		})
	}
}

func TestSQLiteKeysOrderedByRecency(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "recency.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()
	for _, k := range []string{"old", "new"} {
		if err := store.Set(ctx, k, []byte(`{}`)); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	keys, err := store.Keys(ctx, 0)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "new" || keys[1] != "old" {
		t.Fatalf("unexpected key order: %#v", keys)
	}
}

func TestJSONFileStoreRejectsInvalidJSON(t *testing.T) {
	store, err := NewJSONFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("new json store: %v", err)
	}
	if err := store.Set(context.Background(), "k", []byte("not json")); err == nil {
		t.Fatal("expected error for invalid json value")
	}
}

func TestJSONFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	first, err := NewJSONFileStore(path)
	if err != nil {
		t.Fatalf("new json store: %v", err)
	}
	if err := first.Set(context.Background(), "k", []byte(`[1,2]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	second, err := NewJSONFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Fatalf("unexpected value after reopen: %s", got)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

package watchlistdb

import (
	"path/filepath"
	"testing"

	"github.com/portfolai/portfolai/internal/common"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), filepath.Join(t.TempDir(), "watchlist.db"))
	if err != nil {
		t.Fatalf("failed to open watchlist store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndList(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Add("u1", "AAPL")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !created {
		t.Error("first add should report created")
	}

	items, err := store.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "AAPL" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestAdd_DuplicateReportsNotCreated(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add("u1", "AAPL"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	created, err := store.Add("u1", "AAPL")
	if err != nil {
		t.Fatalf("duplicate Add should not error: %v", err)
	}
	if created {
		t.Error("duplicate add should report not-created")
	}

	items, err := store.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected single row after duplicate add, got %d", len(items))
	}
}

func TestList_NewestFirst(t *testing.T) {
	store := newTestStore(t)

	for _, sym := range []string{"AAPL", "MSFT", "TSLA"} {
		if _, err := store.Add("u1", sym); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	items, err := store.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Symbol != "TSLA" {
		t.Errorf("expected newest first, got %v", items)
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add("u1", "AAPL"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	removed, err := store.Remove("u1", "AAPL")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Error("expected removal")
	}

	removed, err = store.Remove("u1", "AAPL")
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed {
		t.Error("removing an absent row should report false")
	}
}

func TestUsersAreIsolated(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Add("u1", "AAPL"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add("u2", "AAPL"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if removed, err := store.Remove("u1", "AAPL"); err != nil || !removed {
		t.Fatalf("Remove failed: removed=%v err=%v", removed, err)
	}

	items, err := store.List("u2")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("u2's watchlist should be untouched, got %+v", items)
	}
}

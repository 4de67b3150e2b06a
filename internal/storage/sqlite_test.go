package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Put("garden", []byte(`{"suns":1}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	got, err := store.Get("garden")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"suns":1}` {
		t.Errorf("Get() = %s, want {\"suns\":1}", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("a", []byte("one")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("a", []byte("two")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	got, err := store.Get("a")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Get() = %q, want %q", got, "two")
	}
}

func TestStoreKeysAndDelete(t *testing.T) {
	store := openTestStore(t)

	for _, k := range []string{"garden:bob", "garden:alice", "garden"} {
		if err := store.Put(k, []byte("{}")); err != nil {
			t.Fatalf("Put(%q) failed: %v", k, err)
		}
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	want := []string{"garden", "garden:alice", "garden:bob"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if err := store.Delete("garden:bob"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.Delete("garden:bob"); err != nil {
		t.Errorf("second Delete() failed: %v", err)
	}
	if _, err := store.Get("garden:bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStoreProgressHistory(t *testing.T) {
	store := openTestStore(t)

	points := []float64{500, 750.5, 1200}
	for i, suns := range points {
		if _, err := store.RecordProgress("garden", suns, i); err != nil {
			t.Fatalf("RecordProgress() failed: %v", err)
		}
	}
	if _, err := store.RecordProgress("other", 9, 9); err != nil {
		t.Fatalf("RecordProgress() failed: %v", err)
	}

	history, err := store.History("garden", 2)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(history))
	}

	// Newest first
	if history[0].Suns != 1200 {
		t.Errorf("Expected newest suns 1200, got %v", history[0].Suns)
	}
	if history[1].Suns != 750.5 {
		t.Errorf("Expected second suns 750.5, got %v", history[1].Suns)
	}
	if history[0].Items != 2 {
		t.Errorf("Expected newest items 2, got %d", history[0].Items)
	}
	if history[0].RecordedAt.IsZero() {
		t.Error("Expected RecordedAt to be set")
	}

	if err := store.ClearHistory("garden"); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}
	history, err = store.History("garden", 0)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(history))
	}

	other, _ := store.History("other", 10)
	if len(other) != 1 {
		t.Errorf("Expected other key untouched, got %d entries", len(other))
	}
}

package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasker/internal/credstore"
)

// TestSaveLoadRoundTrip verifies Save followed by Load returns the same token.
func TestSaveLoadRoundTrip(t *testing.T) {
	store := credstore.New(filepath.Join(t.TempDir(), "token"))

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	token, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected token to be present")
	}
	if token != "abc123" {
		t.Errorf("expected token %q, got %q", "abc123", token)
	}
}

// TestLoadAbsent verifies Load reports absence when no token was saved.
func TestLoadAbsent(t *testing.T) {
	store := credstore.New(filepath.Join(t.TempDir(), "token"))

	token, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Errorf("expected no token, got %q", token)
	}
}

// TestClearThenLoad verifies Clear removes the token.
func TestClearThenLoad(t *testing.T) {
	store := credstore.New(filepath.Join(t.TempDir(), "token"))

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected token to be absent after Clear")
	}
}

// TestClearAbsent verifies clearing a missing token file succeeds.
func TestClearAbsent(t *testing.T) {
	store := credstore.New(filepath.Join(t.TempDir(), "token"))
	if err := store.Clear(); err != nil {
		t.Errorf("Clear of absent token failed: %v", err)
	}
}

// TestSaveCreatesDir verifies Save creates the parent directory.
func TestSaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cfg")
	store := credstore.New(filepath.Join(dir, "token"))

	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("token file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

// TestLoadEmptyFile verifies a whitespace-only token file counts as absent.
func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("\n"), 0600); err != nil {
		t.Fatal(err)
	}

	store := credstore.New(path)
	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected empty token file to count as absent")
	}
}

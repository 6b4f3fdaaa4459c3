package models

import (
	"path/filepath"
	"testing"
)

func openTestDatabase(t *testing.T) (*Database, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "popcorn.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db, path
}

func TestDatabaseGetMissingKey(t *testing.T) {
	db, _ := openTestDatabase(t)
	defer db.Close()

	value, ok, err := db.Get("watched")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Expected missing key, got ok=%v value=%q", ok, value)
	}
}

func TestDatabaseSetOverwritesAndSurvivesReopen(t *testing.T) {
	db, path := openTestDatabase(t)

	if err := db.Set("watched", `[{"imdbId":"tt1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Set("watched", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("watched")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "[]" {
		t.Errorf("Expected stored value '[]', got ok=%v value=%q", ok, value)
	}
}

func TestDatabaseDelete(t *testing.T) {
	db, _ := openTestDatabase(t)
	defer db.Close()

	if err := db.Delete("missing"); err != nil {
		t.Errorf("Deleting a missing key should succeed, got %v", err)
	}
	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := db.Get("k"); ok {
		t.Error("Expected key to be gone after delete")
	}
}

package state

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/amaumene/popcorn/internal/metrics"
	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// failingStore accepts reads and rejects every write
type failingStore struct {
	*MemoryStore
}

func (s failingStore) Set(key, value string) error {
	return errors.New("quota exceeded")
}

func rating(f float64) *float64 { return &f }

func sampleList() models.WatchedList {
	runtime := 136
	return models.WatchedList{{
		ID:                  "tt0133093",
		Title:               "The Matrix",
		PosterURL:           "https://example.com/matrix.jpg",
		RatingExternal:      rating(8.7),
		RatingUser:          9,
		RuntimeMinutes:      &runtime,
		RatingDecisionCount: 2,
	}}
}

func TestPersistedFallsBackToInitial(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]string
	}{
		{"absent", nil},
		{"malformed", map[string]string{models.WatchedKey: "{not json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			for k, v := range tt.seed {
				store.Set(k, v)
			}

			p := NewPersisted(store, models.WatchedKey, models.WatchedList{}, nil, utils.NewNullLogger())

			if got := p.Get(); len(got) != 0 {
				t.Errorf("Expected initial empty list, got %v", got)
			}
		})
	}
}

func TestPersistedWritesOnEveryChange(t *testing.T) {
	store := NewMemoryStore()
	p := NewPersisted(store, models.WatchedKey, models.WatchedList{}, nil, utils.NewNullLogger())

	p.Set(sampleList())
	raw, ok, _ := store.Get(models.WatchedKey)
	if !ok {
		t.Fatal("Expected value to be written")
	}

	p.Update(func(l models.WatchedList) models.WatchedList { return l.Remove("tt0133093") })
	after, _, _ := store.Get(models.WatchedKey)
	if after == raw {
		t.Error("Expected second write to replace the stored value")
	}
	if after != "[]" {
		t.Errorf("Expected empty JSON array, got %s", after)
	}
}

func TestPersistedWriteFailureKeepsMemoryState(t *testing.T) {
	m := metrics.New()
	p := NewPersisted[models.WatchedList](failingStore{NewMemoryStore()}, models.WatchedKey, nil, m, utils.NewNullLogger())

	p.Set(sampleList())

	if got := p.Get(); len(got) != 1 {
		t.Errorf("Expected in-memory value to survive a failed write, got %v", got)
	}
	if got := testutil.ToFloat64(m.StorageWrites.WithLabelValues("failed")); got != 1 {
		t.Errorf("Expected 1 failed write, got %f", got)
	}
}

func TestPersistedSurvivesReload(t *testing.T) {
	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "popcorn.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"bolt":   db,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			first := NewPersisted(store, models.WatchedKey, models.WatchedList{}, nil, utils.NewNullLogger())
			first.Set(sampleList())

			second := NewPersisted(store, models.WatchedKey, models.WatchedList{}, nil, utils.NewNullLogger())
			if !reflect.DeepEqual(second.Get(), sampleList()) {
				t.Errorf("Expected %v after reload, got %v", sampleList(), second.Get())
			}
		})
	}
}

func TestFileStoreRejectsBadKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := store.Set("../escape", "x"); err == nil {
		t.Error("Expected error for path-like key")
	}
	if _, ok, err := store.Get("watched"); err != nil || ok {
		t.Errorf("Expected missing key without error, got ok=%v err=%v", ok, err)
	}
}

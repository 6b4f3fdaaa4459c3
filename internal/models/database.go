package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Record is a raw text value stored under a key
type Record struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Database wraps the bolthold store as a key-value store for raw text
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Get returns the raw value stored under key.
// The boolean is false when the key has never been written.
func (db *Database) Get(key string) (string, bool, error) {
	var record Record
	err := db.store.Get(key, &record)
	if errors.Is(err, bolthold.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return record.Value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *Database) Set(key, value string) error {
	record := &Record{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := db.store.Upsert(key, record); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (db *Database) Delete(key string) error {
	err := db.store.Delete(key, &Record{})
	if err != nil && !errors.Is(err, bolthold.ErrNotFound) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

package state

import (
	"encoding/json"
	"sync"

	"github.com/amaumene/popcorn/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Persisted is a value seeded from a Store and written back on every change.
// Memory is the source of truth: failed writes are logged and never rolled back.
type Persisted[T any] struct {
	mu      sync.Mutex
	value   T
	key     string
	store   Store
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewPersisted reads key from store, falling back to initial when the
// key is absent, unreadable or malformed.
func NewPersisted[T any](store Store, key string, initial T, m *metrics.Metrics, logger *logrus.Logger) *Persisted[T] {
	p := &Persisted[T]{
		value:   initial,
		key:     key,
		store:   store,
		metrics: m,
		logger:  logger,
	}

	raw, ok, err := store.Get(key)
	switch {
	case err != nil:
		logger.WithError(err).WithField("key", key).Warn("Failed to read persisted state, using initial value")
	case !ok:
		logger.WithField("key", key).Debug("No persisted state, using initial value")
	default:
		var stored T
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			logger.WithError(err).WithField("key", key).Warn("Malformed persisted state, using initial value")
		} else {
			p.value = stored
		}
	}

	return p
}

// Get returns the current value
func (p *Persisted[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set replaces the value and writes it back
func (p *Persisted[T]) Set(value T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = value
	p.write()
}

// Update replaces the value with fn applied to the current value
func (p *Persisted[T]) Update(fn func(T) T) T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = fn(p.value)
	p.write()
	return p.value
}

// write is best-effort; callers hold mu
func (p *Persisted[T]) write() {
	data, err := json.Marshal(p.value)
	if err == nil {
		err = p.store.Set(p.key, string(data))
	}
	p.metrics.ObserveStorageWrite(err)
	if err != nil {
		p.logger.WithError(err).WithField("key", p.key).Warn("Failed to persist state")
	}
}

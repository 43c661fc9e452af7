// Package memory provides an in-process storage backend. Suitable for
// single-instance deployments and tests; state is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"
)

type Backend struct {
	locks  sync.Map // map[string]*sync.Mutex
	values sync.Map // map[string]entry
}

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiration
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// New initializes an empty in-memory backend.
func New() *Backend {
	return &Backend{}
}

// getLock returns the per-key mutex, creating it on first use.
func (m *Backend) getLock(key string) *sync.Mutex {
	actual, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func (m *Backend) Get(ctx context.Context, key string) (string, error) {
	lock := m.getLock(key)
	lock.Lock()
	defer lock.Unlock()

	valAny, exists := m.values.Load(key)
	if !exists {
		return "", nil
	}

	val := valAny.(entry)
	if val.expired(time.Now()) {
		m.values.Delete(key)
		return "", nil
	}
	return val.value, nil
}

func (m *Backend) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	lock := m.getLock(key)
	lock.Lock()
	defer lock.Unlock()

	m.values.Store(key, newEntry(value, expiration))
	return nil
}

func (m *Backend) Delete(ctx context.Context, key string) error {
	lock := m.getLock(key)
	lock.Lock()
	defer lock.Unlock()

	m.values.Delete(key)
	return nil
}

// CheckAndSet atomically sets key to newValue only if the current value
// matches oldValue. An empty oldValue means "set only if key is absent";
// expired keys are treated as absent.
func (m *Backend) CheckAndSet(ctx context.Context, key, oldValue, newValue string, expiration time.Duration) (bool, error) {
	lock := m.getLock(key)
	lock.Lock()
	defer lock.Unlock()

	valAny, exists := m.values.Load(key)
	var val entry
	if exists {
		val = valAny.(entry)
		if val.expired(time.Now()) {
			exists = false
			m.values.Delete(key)
		}
	}

	if oldValue == "" {
		if exists {
			return false, nil
		}
		m.values.Store(key, newEntry(newValue, expiration))
		return true, nil
	}

	if !exists || val.value != oldValue {
		return false, nil
	}

	m.values.Store(key, newEntry(newValue, expiration))
	return true, nil
}

func (m *Backend) Close() error {
	m.values = sync.Map{}
	m.locks = sync.Map{}
	return nil
}

func newEntry(value string, expiration time.Duration) entry {
	e := entry{value: value}
	if expiration > 0 {
		e.expiresAt = time.Now().Add(expiration)
	}
	return e
}

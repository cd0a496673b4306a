package kv

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Store with explicit expiry timestamps and an
// injectable clock. It exists for deterministic tests and single-node
// deployments that do not want a Redis dependency; TTL behavior matches
// the Redis store observably, with expiry evaluated lazily on access.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an in-memory store using the real clock.
func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock creates an in-memory store whose notion of "now"
// comes from the given function, so tests can advance time without
// sleeping.
func NewMemoryWithClock(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// live returns the entry at key if it exists and has not expired.
// Expired entries are removed on sight. Caller must hold mu.
func (m *Memory) live(key string) (memoryEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

// Get returns the value at key, or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		return "", ErrNotFound
	}
	return entry.value, nil
}

// SetWithTTL writes value at key, replacing any prior value and TTL.
func (m *Memory) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

// Delete removes the given keys.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// CheckAndIncrement applies the gate under the store mutex, which gives
// the same indivisibility the Lua script gives on Redis.
func (m *Memory) CheckAndIncrement(_ context.Context, key string, cap int, ttl time.Duration) (bool, int, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	entry, ok := m.live(key)
	if !ok {
		m.entries[key] = memoryEntry{value: "1", expiresAt: now.Add(ttl)}
		return true, 1, ttl, nil
	}

	count, err := strconv.Atoi(entry.value)
	if err != nil {
		count = 0
	}

	remaining := time.Duration(0)
	if !entry.expiresAt.IsZero() {
		remaining = entry.expiresAt.Sub(now)
	}

	if count >= cap {
		return false, count, remaining, nil
	}

	count++
	entry.value = strconv.Itoa(count)
	m.entries[key] = entry
	return true, count, remaining, nil
}

// TTLRemaining reports the remaining lifetime of key.
func (m *Memory) TTLRemaining(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		return 0, ErrNotFound
	}
	if entry.expiresAt.IsZero() {
		return 0, ErrNotFound
	}
	return entry.expiresAt.Sub(m.now()), nil
}

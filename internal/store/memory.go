package store

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt *time.Time
}

// MemoryStore is an in-memory PreferenceStore used in tests and as a
// fallback when no durable backend is configured
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get returns the value for key, treating expired entries as misses
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if entry.expiresAt != nil && time.Now().After(*entry.expiresAt) {
		delete(s.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set stores a value with no expiry
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value}
	return nil
}

// SetWithTTL stores a value that expires after ttl
func (s *MemoryStore) SetWithTTL(key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt := time.Now().Add(ttl)
	s.entries[key] = memoryEntry{value: value, expiresAt: &expiresAt}
	return nil
}

// Delete removes an entry by key
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Clear removes every entry
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)
	return nil
}

// SweepExpired removes entries past their expiry
func (s *MemoryStore) SweepExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for key, entry := range s.entries {
		if entry.expiresAt != nil && now.After(*entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

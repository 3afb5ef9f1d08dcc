package session

import (
	"context"
	"sync"
	"time"

	"go-elms/internal/identity"
)

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryStore is a single-process Store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     identity.Clock
}

func NewMemoryStore(now identity.Clock) *MemoryStore {
	if now == nil {
		now = identity.SystemClock
	}
	return &MemoryStore{entries: make(map[string]memoryEntry), now: now}
}

func (s *MemoryStore) Save(_ context.Context, rec Record, idle time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[Key(rec.Role, rec.ID)] = memoryEntry{rec: rec, expiresAt: s.now().Add(idle)}
	return nil
}

func (s *MemoryStore) Touch(_ context.Context, role identity.Role, id string, idle time.Duration) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(role, id)
	entry, ok := s.entries[key]
	if !ok {
		return Record{}, ErrSessionNotFound
	}

	now := s.now()
	if !now.Before(entry.expiresAt) {
		delete(s.entries, key)
		return Record{}, ErrSessionNotFound
	}

	entry.expiresAt = now.Add(idle)
	s.entries[key] = entry
	return entry.rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, role identity.Role, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, Key(role, id))
	return nil
}

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-memory reference Store implementation.
// It is a development and testing fallback: records live in process memory
// and are not shared across processes.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Create(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return ErrDuplicateSession
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Clean(_ context.Context) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.records {
		if !rec.ExpiresAt.After(now) {
			delete(s.records, id)
		}
	}
	return nil
}

// Len returns the number of stored records. Intended for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

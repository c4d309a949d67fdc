package kv

import (
	"context"
	"sync"
)

// MemStore is a map-backed Store used by tests and throwaway sessions.
type MemStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string]string)}
}

func (s *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	return value, ok, nil
}

func (s *MemStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

func (s *MemStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

package storage

import (
	"context"
	"sync"
)

// MemoryStore is the ephemeral adapter used by tests and by anonymous
// sessions that opted out of persistence.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
	hub  *hub
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string][]byte),
		hub:  newHub(),
	}
}

func (s *MemoryStore) Get(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, key string, value []byte) error {
	s.mu.Lock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[collection][key] = stored
	s.mu.Unlock()

	s.hub.publish(Event{Type: EventSet, Collection: collection, Key: key, Value: stored})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	delete(s.data[collection], key)
	s.mu.Unlock()

	s.hub.publish(Event{Type: EventDelete, Collection: collection, Key: key})
	return nil
}

func (s *MemoryStore) List(_ context.Context, collection string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.data[collection]))
	for key, value := range s.data[collection] {
		copied := make([]byte, len(value))
		copy(copied, value)
		out[key] = copied
	}
	return out, nil
}

func (s *MemoryStore) Subscribe(collection string) (<-chan Event, func()) {
	return s.hub.subscribe(collection)
}

func (s *MemoryStore) Close() error {
	s.hub.closeAll()
	return nil
}

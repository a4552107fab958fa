// Package storage provides the key-value storage capability the rest of the
// system persists through. A logical collection maps to a set of JSON blobs
// keyed by string; the same interface fronts the in-memory, SQLite and
// Postgres backends so switching between offline and hosted modes is a
// configuration choice.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a key does not exist in a collection.
var ErrNotFound = errors.New("storage: key not found")

// EventType marks the kind of change in a subscription event.
type EventType string

const (
	EventSet    EventType = "set"
	EventDelete EventType = "delete"
)

// Event describes one change to a collection.
type Event struct {
	Type       EventType `json:"type"`
	Collection string    `json:"collection"`
	Key        string    `json:"key"`
	Value      []byte    `json:"value,omitempty"`
}

// Store is the storage capability: keyed blobs per logical collection with
// in-process change notification. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	Set(ctx context.Context, collection, key string, value []byte) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) (map[string][]byte, error)

	// Subscribe returns a channel of change events for one collection and a
	// cancel func that must be called on teardown. Events are fire-and-forget:
	// slow subscribers drop events rather than block writers.
	Subscribe(collection string) (<-chan Event, func())

	Close() error
}

// hub implements the in-process subscription fanout shared by all adapters.
// Backends need no native notify support; every Set/Delete passes through
// publish after the write succeeds.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan Event
	next int
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[int]chan Event)}
}

func (h *hub) subscribe(collection string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan Event)
	}
	id := h.next
	h.next++
	ch := make(chan Event, 16)
	h.subs[collection][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[collection][id]; ok {
			delete(h.subs[collection], id)
			close(sub)
		}
	}
	return ch, cancel
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[ev.Collection] {
		select {
		case ch <- ev:
		default: // drop rather than block the writer
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for collection, subs := range h.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
		delete(h.subs, collection)
	}
}

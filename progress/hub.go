package progress

import (
	"log"
	"sync"

	"inventario-backend/dtos"

	"github.com/google/uuid"
)

// Observer receives progress events. Send returning an error means the
// delivery failed and the hub may drop the observer.
type Observer interface {
	Send(event dtos.ProgressEvent) error
}

// Hub is the registry of connected observers. It is shared mutable state
// across every request and websocket connection, so all methods are safe
// to call concurrently. It is plain injected state: construct one per
// server (or per test) rather than sharing a package-level instance.
type Hub struct {
	mu        sync.RWMutex
	observers map[uuid.UUID]Observer
}

func NewHub() *Hub {
	return &Hub{observers: make(map[uuid.UUID]Observer)}
}

// Register adds an observer and returns its handle. Registration takes
// effect for every subsequent broadcast; earlier events are not replayed.
func (h *Hub) Register(obs Observer) uuid.UUID {
	id := uuid.New()
	h.mu.Lock()
	h.observers[id] = obs
	h.mu.Unlock()
	return id
}

// Unregister removes an observer. Removing an already-absent handle is a
// no-op.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	delete(h.observers, id)
	h.mu.Unlock()
}

// Count returns how many observers are currently registered.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Broadcast delivers the event to every registered observer. Delivery to
// one observer is independent of the rest: a failing observer is dropped
// from the registry and the others still receive the event. Events sent
// from a single goroutine reach each observer in the order they were
// broadcast.
func (h *Hub) Broadcast(event dtos.ProgressEvent) {
	h.mu.RLock()
	snapshot := make(map[uuid.UUID]Observer, len(h.observers))
	for id, obs := range h.observers {
		snapshot[id] = obs
	}
	h.mu.RUnlock()

	var dead []uuid.UUID
	for id, obs := range snapshot {
		if err := obs.Send(event); err != nil {
			log.Printf("Dropping progress observer %s: %v", id, err)
			dead = append(dead, id)
		}
	}

	if len(dead) > 0 {
		h.mu.Lock()
		for _, id := range dead {
			delete(h.observers, id)
		}
		h.mu.Unlock()
	}
}

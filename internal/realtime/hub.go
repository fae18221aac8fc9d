// Package realtime pushes change-event invalidation hints to connected
// browsers over websockets. Clients subscribe per entity and refetch the
// affected list when a hint arrives.
package realtime

import (
	"sync"

	"docuflow/internal/events"
)

// Hub maintains the set of active clients and fans change events out to the
// subscriptions that match them.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan events.Change
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates an empty hub. Run must be started for it to do anything.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan events.Change),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case change := <-h.broadcast:
			h.dispatch(change)
		}
	}
}

// Broadcast queues a change for fan-out.
func (h *Hub) Broadcast(change events.Change) {
	h.broadcast <- change
}

func (h *Hub) dispatch(change events.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.mu.Lock()
		for subID, entity := range client.subscriptions {
			if entity != "" && entity != change.Entity {
				continue
			}
			msg := BaseMessage{
				Type:    TypeEvent,
				Payload: mustMarshal(EventPayload{SubID: subID, Change: change}),
			}
			select {
			case client.send <- msg:
			default:
				// Slow client: drop the hint, the next change re-triggers.
			}
		}
		client.mu.Unlock()
	}
}

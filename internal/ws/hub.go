// Package ws pushes order lifecycle events to connected operator clients so
// open order-book views refresh without polling.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// orderEventPayload is the payload of order lifecycle events.
type orderEventPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
// All operators share one room; every order event reaches every client.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan Event

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event Event) {
	h.broadcast <- event
}

// BroadcastOrderEvent sends an order lifecycle event (order.created,
// order.updated, order.deleted) to every connected client.
func (h *Hub) BroadcastOrderEvent(event string, orderID uuid.UUID) {
	payload, err := json.Marshal(orderEventPayload{OrderID: orderID})
	if err != nil {
		return
	}
	h.Broadcast(Event{Type: event, Payload: payload})
}

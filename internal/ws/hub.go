package ws

import (
	"encoding/json"
	"log"
	"sync"

	"roamio/internal/domain"
)

// Event is one lifecycle notification pushed to connected dashboards.
type Event struct {
	Type string      `json:"type"` // e.g. "commission.approved", "payout.completed"
	Data interface{} `json:"data"`
}

// Client represents a single WebSocket connection with user context.
type Client struct {
	UserID uint
	Role   string
	Send   chan []byte
	Hub    *Hub
}

// Close detaches the client and closes its Send channel. The close happens
// inside the hub's write lock so it can never race a concurrent Publish send.
func (c *Client) Close() {
	if c.Hub == nil {
		close(c.Send)
		return
	}
	c.Hub.unregister(c)
}

// Hub maintains the set of active clients. Admin connections receive every
// event; affiliate connections only their own.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// userID -> clients (one user can have multiple connections)
	byUser map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		byUser:  make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	h.clients[c] = struct{}{}
	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[*Client]struct{})
	}
	h.byUser[c.UserID][c] = struct{}{}
}

// unregister removes the client and closes its channel while holding the
// write lock. Publish sends under the read lock, so the two exclude each
// other and a send on a closed channel cannot happen. Idempotent: a client
// already removed is left alone.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if set := h.byUser[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
	close(c.Send)
}

// Publish delivers the event to all admin connections and to the affected
// user's own connections. A nil hub or marshal failure drops the event; the
// feed is best-effort and never blocks a lifecycle command.
func (h *Hub) Publish(userID uint, ev Event) {
	if h == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ws] marshal event %s: %v", ev.Type, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.Role != domain.RoleAdmin && c.UserID != userID {
			continue
		}
		select {
		case c.Send <- data:
		default:
			// Slow consumer: drop rather than block the publisher.
		}
	}
}

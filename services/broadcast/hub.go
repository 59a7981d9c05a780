// Package broadcast pushes advisory "data changed" signals to open
// editor sessions so other tabs refresh without waiting for a poll.
// Delivery is best-effort by design: a missed signal only delays a
// refresh, it never corrupts state.
package broadcast

import (
	"log"
	"sync"
)

// Message types sent to editor sessions.
const (
	MessageTypeLiveDataChanged = "livedata_changed"
	MessageTypeConfigChanged   = "config_changed"
)

// Message is the wire envelope sent over the channel.
type Message struct {
	Type     string `json:"type"`
	Revision string `json:"revision,omitempty"`
	Version  int64  `json:"version,omitempty"`
}

// Hub tracks connected editor sessions and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("[broadcast] editor session connected (%d total)", total)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("[broadcast] editor session disconnected (%d total)", total)
}

// Broadcast sends a message to every connected session. Sessions whose
// send buffer is full are skipped; they will catch up on their next poll.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			log.Printf("[broadcast] dropping %s signal for slow session", msg.Type)
		}
	}
}

// ClientCount returns the number of connected sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

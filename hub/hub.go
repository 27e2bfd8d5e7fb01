package hub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer bounds the per-subscriber outbound queue; a subscriber that
// falls this far behind starts losing frames instead of stalling the cycle.
const sendBuffer = 8

// Hub is the broadcast transport for live subscribers.
type Hub struct {
	registry *Registry
	upgrader websocket.Upgrader

	// latest supplies the stored snapshot payload for a subscriber that
	// arrives while broadcasting is already running; it reads the store, it
	// never forces a fetch.
	latest func() (UpdatePayload, bool)

	mu      sync.Mutex
	clients map[*client]struct{}
}

func New(registry *Registry, latest func() (UpdatePayload, bool)) *Hub {
	return &Hub{
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		latest:  latest,
		clients: map[*client]struct{}{},
	}
}

func (h *Hub) Registry() *Registry { return h.registry }

// SubscriberCount reports the number of live subscribers.
func (h *Hub) SubscriberCount() int { return h.registry.Count() }

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// HandleWS upgrades the request and registers the connection as a
// subscriber until it closes.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("hub: upgrade error: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()

	// The first subscriber triggers an immediate cycle through the registry
	// transition; anyone arriving later gets the stored snapshot right away
	// instead of waiting for the next tick.
	if count := h.registry.OnConnect(); count > 1 && h.latest != nil {
		if payload, ok := h.latest(); ok {
			if data, err := json.Marshal(envelope{Event: EventBulkUpdate, Data: payload}); err == nil {
				c.enqueue(data)
			}
		}
	}
	log.Printf("hub: subscriber connected (%d total)", h.registry.Count())

	h.readPump(c)
}

// Broadcast marshals the event once and queues it to every current
// subscriber, dropping the frame for any subscriber whose queue is full.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("hub: marshal error for %s: %v", event, err)
		return
	}
	h.mu.Lock()
	for c := range h.clients {
		c.enqueue(payload)
	}
	h.mu.Unlock()
}

func (c *client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			_ = c.conn.Close()
			return
		}
	}
	_ = c.conn.Close()
}

// readPump discards inbound frames and unregisters the subscriber when the
// connection drops.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		close(c.send)
		remaining := h.registry.OnDisconnect()
		log.Printf("hub: subscriber disconnected (%d total)", remaining)
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

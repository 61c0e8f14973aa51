package stream

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrTooManyClients is returned when the hub is at capacity.
var ErrTooManyClients = errors.New("stream: too many clients")

// sendBuffer is how many encoded frames may queue per client before new
// frames are dropped for it.
const sendBuffer = 4

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected viewers and fans frames out to them.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	max     int
}

// NewHub creates a hub admitting at most max clients (0 = unlimited).
func NewHub(max int) *Hub {
	return &Hub{clients: make(map[string]*client), max: max}
}

// Full reports whether another client would be refused.
func (h *Hub) Full() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.max > 0 && len(h.clients) >= h.max
}

func (h *Hub) add(conn *websocket.Conn) (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.max > 0 && len(h.clients) >= h.max {
		return nil, ErrTooManyClients
	}
	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.clients[c.id] = c
	return c, nil
}

// remove drops c and closes its send queue. Removing twice is a no-op.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues frame for every client and returns how many clients
// were too far behind to take it.
func (h *Hub) Broadcast(frame []byte) (dropped int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- frame:
		default:
			dropped++
		}
	}
	return dropped
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

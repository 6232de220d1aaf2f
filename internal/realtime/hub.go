package realtime

import (
	"sync"

	"go.uber.org/zap"
)

const textMessageType = 1

// Conn is the subset of a websocket connection the hub needs. Inbound
// frames are read only to detect disconnects; the channel is receive-only
// from the client's point of view.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn Conn
	send chan []byte
}

// Hub fans out frames to every connected client. Delivery is at-most-once
// and best-effort: a client whose buffer is full loses the frame, a client
// whose write fails is dropped. Broadcast snapshots the membership before
// iterating so connects and disconnects during a publish are safe.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Serve registers the connection and pumps broadcast frames to it until
// the peer disconnects. It blocks for the lifetime of the connection.
func (h *Hub) Serve(conn Conn) {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	h.register(c)
	defer h.unregister(c)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-c.send:
			if err := conn.WriteMessage(textMessageType, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Broadcast queues the frame for every connected client. Clients that
// cannot keep up are skipped silently; they reconcile by re-querying.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.Lock()
	snapshot := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	for _, c := range snapshot {
		select {
		case c.send <- frame:
		default:
		}
	}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", zap.Int("clients", h.ClientCount()))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
	h.logger.Debug("websocket client disconnected", zap.Int("clients", h.ClientCount()))
}

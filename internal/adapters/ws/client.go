package ws

import (
	"errors"
	"sync"

	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/gorilla/websocket"
)

var ErrBackpressure = errors.New("backpressure")

// Client is one live websocket session. It owns the connection, the send
// buffer and the set of rooms it has joined; the registry only ever sees
// its identifier.
type Client struct {
	id   domain.SessionID
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
	name   string
	rooms  map[domain.RoomName]struct{}
}

func newClient(id domain.SessionID, conn *websocket.Conn, sendBuf int) *Client {
	return &Client{
		id:    id,
		conn:  conn,
		send:  make(chan []byte, sendBuf),
		rooms: make(map[domain.RoomName]struct{}),
	}
}

func (c *Client) ID() domain.SessionID { return c.id }

// TrySend enqueues without blocking. A full buffer means the consumer is
// too slow and the frame is dropped (at-most-once delivery).
func (c *Client) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// SetName records the caller-supplied display name. Empty names are ignored
// so the identifier fallback stays in effect.
func (c *Client) SetName(name string) {
	if name == "" {
		return
	}
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

// DisplayName returns the display name, falling back to the session ID.
func (c *Client) DisplayName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.name == "" {
		return string(c.id)
	}
	return c.name
}

func (c *Client) joinedRoom(room domain.RoomName) {
	c.mu.Lock()
	c.rooms[room] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) leftRoom(room domain.RoomName) {
	c.mu.Lock()
	delete(c.rooms, room)
	c.mu.Unlock()
}

// Rooms snapshots the current memberships, used for the disconnect cascade.
func (c *Client) Rooms() []domain.RoomName {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.RoomName, 0, len(c.rooms))
	for room := range c.rooms {
		out = append(out, room)
	}
	return out
}

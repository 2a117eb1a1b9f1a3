package ws

import (
	"encoding/json"
	"sync"

	"github.com/aditidalvi3/jamsync-backend/internal/core"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Hub maps session identifiers to live clients and implements the core
// Broadcaster and Roster contracts on top of the registry's membership.
type Hub struct {
	registry *core.Registry

	mu      sync.RWMutex
	clients map[domain.SessionID]*Client
}

func NewHub(reg *core.Registry) *Hub {
	return &Hub{
		registry: reg,
		clients:  make(map[domain.SessionID]*Client),
	}
}

func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	h.clients[c.ID()] = c
	h.mu.Unlock()
	log.Info().Str("module", "ws.hub").Str("sid", string(c.ID())).Msg("client registered")
}

func (h *Hub) Remove(sid domain.SessionID) {
	h.mu.Lock()
	delete(h.clients, sid)
	h.mu.Unlock()
	log.Info().Str("module", "ws.hub").Str("sid", string(sid)).Msg("client unregistered")
}

func (h *Hub) get(sid domain.SessionID) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[sid]
	return c, ok
}

// ToRoom marshals the event once and fans it out to the room's current
// members. Sessions whose send buffer is full are skipped, not waited on.
func (h *Hub) ToRoom(room domain.RoomName, event string, payload any, exclude domain.SessionID) {
	frame, err := marshalEnvelope(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "ws.hub").Str("event", event).Msg("marshal broadcast")
		return
	}
	sent := 0
	for _, sid := range h.registry.Members(room) {
		if sid == exclude {
			continue
		}
		c, ok := h.get(sid)
		if !ok {
			continue
		}
		if err := c.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "ws.hub").Str("sid", string(sid)).Str("event", event).Msg("dropped frame")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "ws.hub").Str("room", string(room)).Str("event", event).Int("sent_to", sent).Msg("broadcast")
}

// DisplayName implements core.Roster. Unknown sessions resolve to their
// identifier so roster snapshots never fail.
func (h *Hub) DisplayName(sid domain.SessionID) string {
	if c, ok := h.get(sid); ok {
		return c.DisplayName()
	}
	return string(sid)
}

func marshalEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(domain.Envelope{Event: event, Data: data})
}

package core

import (
	"sync"

	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry is the in-memory mapping from rooms to connected participants.
// It holds only membership identifiers, never connections; the websocket
// adapter owns those. All operations are total: unknown rooms and absent
// participants are handled as no-ops, not errors.
//
// Invariant: a room with zero participants does not persist. Leave deletes
// the room entry under the same lock that guards Join and Members, so a
// concurrent Members never observes an empty-but-present room.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]map[domain.SessionID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomName]map[domain.SessionID]struct{})}
}

// Join adds sid to the room's membership set, creating the room entry on
// first join. Joining twice has no additional effect.
func (r *Registry) Join(room domain.RoomName, sid domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[domain.SessionID]struct{})
		r.rooms[room] = members
	}
	members[sid] = struct{}{}
	log.Info().Str("module", "core.registry").Str("room", string(room)).Str("sid", string(sid)).Msg("member joined")
}

// Leave removes sid from the room if present and deletes the room entry
// when the set empties. No-op for unknown rooms or participants.
func (r *Registry) Leave(room domain.RoomName, sid domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	if _, present := members[sid]; !present {
		return
	}
	delete(members, sid)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
	log.Info().Str("module", "core.registry").Str("room", string(room)).Str("sid", string(sid)).Msg("member left")
}

// Members returns a snapshot of the room's membership. Empty for unknown rooms.
func (r *Registry) Members(room domain.RoomName) []domain.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SessionID, 0, len(r.rooms[room]))
	for sid := range r.rooms[room] {
		out = append(out, sid)
	}
	return out
}

// Rooms returns the currently known room names.
func (r *Registry) Rooms() []domain.RoomName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomName, 0, len(r.rooms))
	for name := range r.rooms {
		out = append(out, name)
	}
	return out
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
}

// List reports every room with its member count, for the rooms API.
func (r *Registry) List() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for name, members := range r.rooms {
		out = append(out, RoomInfo{Name: name, MemberCount: len(members)})
	}
	return out
}

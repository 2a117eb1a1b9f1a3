package app

import (
	"encoding/json"
	"time"

	"github.com/aditidalvi3/jamsync-backend/internal/core"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Router turns inbound connection events into registry mutations and room
// broadcasts. It never returns errors to the transport: a malformed event
// (missing room, unknown signaling kind) is a silent no-op so that one bad
// client cannot disturb other sessions or rooms.
type Router struct {
	registry  *core.Registry
	broadcast core.Broadcaster
	roster    core.Roster

	// now is swappable for tests; chat timestamps are assigned here at
	// dispatch time, never taken from the client.
	now func() time.Time
}

func NewRouter(reg *core.Registry, b core.Broadcaster, roster core.Roster) *Router {
	return &Router{
		registry:  reg,
		broadcast: b,
		roster:    roster,
		now:       time.Now,
	}
}

// Join adds the session to the room, announces it to the other members and
// sends the full roster snapshot to the entire room including the joiner.
// The snapshot is not a delta, so a client that missed earlier presence
// events still ends up with a consistent view.
func (rt *Router) Join(sid domain.SessionID, room domain.RoomName, name string) {
	if room == "" {
		log.Warn().Str("module", "app.router").Str("sid", string(sid)).Msg("join without room")
		return
	}
	rt.registry.Join(room, sid)

	if name == "" {
		name = string(sid)
	}
	rt.broadcast.ToRoom(room, domain.EventPresenceJoined, domain.PresenceJoined{ID: sid, Name: name}, sid)
	rt.broadcast.ToRoom(room, domain.EventRosterSnapshot, rt.snapshot(room), "")
}

// Chat echoes the message to the entire room, sender included, with a
// server-assigned timestamp.
func (rt *Router) Chat(sid domain.SessionID, room domain.RoomName, message, sender string) {
	if room == "" {
		log.Warn().Str("module", "app.router").Str("sid", string(sid)).Msg("chat without room")
		return
	}
	if sender == "" {
		sender = "Anonymous"
	}
	rt.broadcast.ToRoom(room, domain.EventChatMessage, domain.ChatMessage{
		Sender:    sender,
		Message:   message,
		Timestamp: rt.now().UnixMilli(),
	}, "")
}

// Signal relays a negotiation payload to every other room member. The
// payload is opaque to the server; its semantics belong to the peers'
// connection protocol.
func (rt *Router) Signal(kind string, sid domain.SessionID, room domain.RoomName, payload json.RawMessage) {
	switch kind {
	case domain.EventOffer, domain.EventAnswer, domain.EventICECandidate:
	default:
		log.Warn().Str("module", "app.router").Str("kind", kind).Msg("unknown signaling kind")
		return
	}
	if room == "" {
		log.Warn().Str("module", "app.router").Str("sid", string(sid)).Str("kind", kind).Msg("signal without room")
		return
	}
	rt.broadcast.ToRoom(room, kind, domain.SignalRelay{From: sid, Payload: payload}, sid)
}

// Leave removes the session from one room and announces the departure to
// the remaining members.
func (rt *Router) Leave(sid domain.SessionID, room domain.RoomName) {
	if room == "" {
		return
	}
	rt.registry.Leave(room, sid)
	rt.broadcast.ToRoom(room, domain.EventPresenceLeft, domain.PresenceLeft{ID: sid}, sid)
}

// Disconnect cascades a leave for every room the session was a member of.
// The transport supplies the membership list before tearing the session
// down; each room's other members receive exactly one presence-left.
func (rt *Router) Disconnect(sid domain.SessionID, rooms []domain.RoomName) {
	for _, room := range rooms {
		rt.Leave(sid, room)
	}
	log.Info().Str("module", "app.router").Str("sid", string(sid)).Int("rooms", len(rooms)).Msg("session disconnected")
}

// NowPlaying forwards the normalized track to the whole room. A nil track
// broadcasts a null payload, which clients can tell apart from never having
// received the event. This is the only call site for the now-playing fanout.
func (rt *Router) NowPlaying(room domain.RoomName, track *domain.Track) {
	if room == "" {
		return
	}
	rt.broadcast.ToRoom(room, domain.EventNowPlaying, domain.NowPlaying{Track: track}, "")
}

func (rt *Router) snapshot(room domain.RoomName) domain.RosterSnapshot {
	sids := rt.registry.Members(room)
	members := make([]domain.Member, 0, len(sids))
	for _, sid := range sids {
		members = append(members, domain.Member{ID: sid, Name: rt.roster.DisplayName(sid)})
	}
	return domain.RosterSnapshot{Room: room, Members: members}
}

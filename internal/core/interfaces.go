package core

import "github.com/aditidalvi3/jamsync-backend/internal/domain"

// Broadcaster fans an event out to the current members of a room.
// Owned by the websocket adapter; the core never touches transport
// resources. Delivery is best-effort: slow consumers are dropped.
type Broadcaster interface {
	// ToRoom sends event/payload to every member of room except exclude.
	// An empty exclude means no exclusion.
	ToRoom(room domain.RoomName, event string, payload any, exclude domain.SessionID)
}

// Roster resolves session identifiers to display names for snapshots.
// Falls back to the identifier itself when no name was supplied.
type Roster interface {
	DisplayName(sid domain.SessionID) string
}

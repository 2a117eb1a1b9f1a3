package domain

import "encoding/json"

// Inbound event names (client -> server).
const (
	EventJoin  = "join"
	EventChat  = "chat"
	EventLeave = "leave"

	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice-candidate"
)

// Outbound event names (server -> client).
const (
	EventPresenceJoined = "presence-joined"
	EventPresenceLeft   = "presence-left"
	EventRosterSnapshot = "roster-snapshot"
	EventChatMessage    = "chat-message"
	EventNowPlaying     = "now-playing"
)

// Envelope wraps every websocket message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client -> server payloads.

type JoinRequest struct {
	Room string `json:"room"`
	Name string `json:"name,omitempty"`
}

type ChatRequest struct {
	Room    string `json:"room"`
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

type SignalRequest struct {
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

type LeaveRequest struct {
	Room string `json:"room"`
}

// Server -> client payloads.

type PresenceJoined struct {
	ID   SessionID `json:"id"`
	Name string    `json:"name"`
}

type PresenceLeft struct {
	ID SessionID `json:"id"`
}

type RosterSnapshot struct {
	Room    RoomName `json:"room"`
	Members []Member `json:"members"`
}

type ChatMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// SignalRelay carries negotiation data between peers unchanged. From lets
// the receiver address its reply; Payload is never parsed by the server.
type SignalRelay struct {
	From    SessionID       `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

// NowPlaying with a nil Track means "nothing playing right now", which is
// distinct from the event never having been sent.
type NowPlaying struct {
	Track *Track `json:"track"`
}

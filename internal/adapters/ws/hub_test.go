package ws

import (
	"encoding/json"
	"testing"

	"github.com/aditidalvi3/jamsync-backend/internal/core"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) []domain.Envelope {
	var out []domain.Envelope
	for {
		select {
		case frame := <-c.send:
			var env domain.Envelope
			if err := json.Unmarshal(frame, &env); err == nil {
				out = append(out, env)
			}
		default:
			return out
		}
	}
}

func TestHub_ToRoom_FansOutToMembersExceptExcluded(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry()
	hub := NewHub(reg)

	s1 := newClient("s1", nil, 4)
	s2 := newClient("s2", nil, 4)
	s3 := newClient("s3", nil, 4)
	hub.Add(s1)
	hub.Add(s2)
	hub.Add(s3)
	reg.Join("jam1", "s1")
	reg.Join("jam1", "s2")
	reg.Join("jam1", "s3")

	hub.ToRoom("jam1", domain.EventOffer, domain.SignalRelay{From: "s1"}, "s1")

	// Sender never receives its own signaling event
	req.Empty(drain(s1))
	for _, c := range []*Client{s2, s3} {
		got := drain(c)
		req.Len(got, 1)
		req.Equal(domain.EventOffer, got[0].Event)
	}
}

func TestHub_ToRoom_UnknownRoomAndMissingClientAreNoOps(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry()
	hub := NewHub(reg)

	// Unknown room: nothing to deliver, nothing breaks
	hub.ToRoom("ghost", domain.EventChatMessage, domain.ChatMessage{}, "")

	// Member registered in the room but its client already removed
	reg.Join("jam1", "s1")
	hub.ToRoom("jam1", domain.EventChatMessage, domain.ChatMessage{}, "")
	req.Empty(hub.clients)
}

func TestHub_ToRoom_DropsFramesOnBackpressure(t *testing.T) {
	req := require.New(t)
	reg := core.NewRegistry()
	hub := NewHub(reg)

	slow := newClient("s1", nil, 1)
	hub.Add(slow)
	reg.Join("jam1", "s1")

	// Second broadcast overflows the buffer and is dropped, not blocked on
	hub.ToRoom("jam1", domain.EventChatMessage, domain.ChatMessage{Message: "one"}, "")
	hub.ToRoom("jam1", domain.EventChatMessage, domain.ChatMessage{Message: "two"}, "")

	got := drain(slow)
	req.Len(got, 1)
	var msg domain.ChatMessage
	req.NoError(json.Unmarshal(got[0].Data, &msg))
	req.Equal("one", msg.Message)
}

func TestHub_DisplayName_FallsBackToSessionID(t *testing.T) {
	req := require.New(t)
	hub := NewHub(core.NewRegistry())

	named := newClient("s1", nil, 1)
	named.SetName("alice")
	hub.Add(named)
	anon := newClient("s2", nil, 1)
	hub.Add(anon)

	req.Equal("alice", hub.DisplayName("s1"))
	req.Equal("s2", hub.DisplayName("s2"))
	req.Equal("gone", hub.DisplayName("gone"))
}

func TestClient_SetName_IgnoresEmpty(t *testing.T) {
	req := require.New(t)
	c := newClient("s1", nil, 1)

	c.SetName("")
	req.Equal("s1", c.DisplayName())

	c.SetName("alice")
	req.Equal("alice", c.DisplayName())
}

func TestClient_RoomBookkeeping(t *testing.T) {
	req := require.New(t)
	c := newClient("s1", nil, 1)

	c.joinedRoom("a")
	c.joinedRoom("b")
	c.leftRoom("a")

	req.Equal([]domain.RoomName{"b"}, c.Rooms())
}

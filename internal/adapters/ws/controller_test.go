package ws

import (
	"encoding/json"
	"testing"

	"github.com/aditidalvi3/jamsync-backend/internal/app"
	"github.com/aditidalvi3/jamsync-backend/internal/config"
	"github.com/aditidalvi3/jamsync-backend/internal/core"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestController() (*Controller, *Hub, *core.Registry) {
	reg := core.NewRegistry()
	hub := NewHub(reg)
	router := app.NewRouter(reg, hub, hub)
	return NewController(hub, router, &config.Config{}), hub, reg
}

func inbound(t *testing.T, event string, data any) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	frame, err := json.Marshal(domain.Envelope{Event: event, Data: raw})
	require.NoError(t, err)
	return frame
}

func TestDispatch_JoinThenChatReachesBothMembers(t *testing.T) {
	req := require.New(t)
	ctl, hub, reg := newTestController()

	alice := newClient("s1", nil, 8)
	bob := newClient("s2", nil, 8)
	hub.Add(alice)
	hub.Add(bob)

	ctl.dispatch(alice, inbound(t, domain.EventJoin, domain.JoinRequest{Room: "jam1", Name: "alice"}))
	ctl.dispatch(bob, inbound(t, domain.EventJoin, domain.JoinRequest{Room: "jam1", Name: "bob"}))
	req.Len(reg.Members("jam1"), 2)
	drain(alice)
	drain(bob)

	ctl.dispatch(alice, inbound(t, domain.EventChat, domain.ChatRequest{Room: "jam1", Message: "hi", Sender: "alice"}))

	// Chat is echoed to the whole room, sender included
	for _, c := range []*Client{alice, bob} {
		got := drain(c)
		req.Len(got, 1)
		req.Equal(domain.EventChatMessage, got[0].Event)
		var msg domain.ChatMessage
		req.NoError(json.Unmarshal(got[0].Data, &msg))
		req.Equal("alice", msg.Sender)
		req.Equal("hi", msg.Message)
		req.NotZero(msg.Timestamp)
	}
}

func TestDispatch_SignalingNeverEchoesToSender(t *testing.T) {
	req := require.New(t)
	ctl, hub, _ := newTestController()

	alice := newClient("s1", nil, 8)
	bob := newClient("s2", nil, 8)
	hub.Add(alice)
	hub.Add(bob)
	ctl.dispatch(alice, inbound(t, domain.EventJoin, domain.JoinRequest{Room: "jam1"}))
	ctl.dispatch(bob, inbound(t, domain.EventJoin, domain.JoinRequest{Room: "jam1"}))
	drain(alice)
	drain(bob)

	ctl.dispatch(alice, inbound(t, domain.EventOffer, domain.SignalRequest{
		Room:    "jam1",
		Payload: json.RawMessage(`{"sdp":"v=0"}`),
	}))

	req.Empty(drain(alice))
	got := drain(bob)
	req.Len(got, 1)
	req.Equal(domain.EventOffer, got[0].Event)
	var relay domain.SignalRelay
	req.NoError(json.Unmarshal(got[0].Data, &relay))
	req.Equal(domain.SessionID("s1"), relay.From)
	req.JSONEq(`{"sdp":"v=0"}`, string(relay.Payload))
}

func TestDispatch_MalformedEventsAreSilentNoOps(t *testing.T) {
	req := require.New(t)
	ctl, hub, reg := newTestController()

	alice := newClient("s1", nil, 8)
	hub.Add(alice)

	ctl.dispatch(alice, []byte(`not json`))
	ctl.dispatch(alice, inbound(t, domain.EventJoin, domain.JoinRequest{Room: ""}))
	ctl.dispatch(alice, inbound(t, "teleport", map[string]string{"room": "jam1"}))

	req.Empty(reg.Rooms())
	req.Empty(alice.Rooms())
	req.Empty(drain(alice))
}

func TestDispatch_LeaveUpdatesBookkeepingAndRegistry(t *testing.T) {
	req := require.New(t)
	ctl, hub, reg := newTestController()

	alice := newClient("s1", nil, 8)
	hub.Add(alice)
	ctl.dispatch(alice, inbound(t, domain.EventJoin, domain.JoinRequest{Room: "jam1"}))
	req.Equal([]domain.RoomName{"jam1"}, alice.Rooms())

	ctl.dispatch(alice, inbound(t, domain.EventLeave, domain.LeaveRequest{Room: "jam1"}))

	req.Empty(alice.Rooms())
	req.Empty(reg.Rooms())
}

package ws

import (
	"encoding/json"
	"net/http"

	"github.com/aditidalvi3/jamsync-backend/internal/app"
	"github.com/aditidalvi3/jamsync-backend/internal/config"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const sendBufferSize = 32

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Controller upgrades HTTP requests to websocket sessions and dispatches
// decoded envelopes to the event router.
type Controller struct {
	hub    *Hub
	router *app.Router
	cfg    *config.Config
}

func NewController(hub *Hub, router *app.Router, cfg *config.Config) *Controller {
	return &Controller{hub: hub, router: router, cfg: cfg}
}

func (ctl *Controller) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("upgrade failed")
		return
	}

	// A fresh identifier per connection; reconnects are new sessions.
	sid := domain.SessionID(uuid.NewString())
	client := newClient(sid, conn, sendBufferSize)
	ctl.hub.Add(client)
	log.Info().Str("module", "ws").Str("sid", string(sid)).Msg("new connection")

	go ctl.writePump(client)
	go ctl.readPump(client)
}

func (ctl *Controller) dispatch(client *Client, data []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "ws").Str("sid", string(client.ID())).Msg("bad envelope")
		return
	}

	switch env.Event {
	case domain.EventJoin:
		var p domain.JoinRequest
		if err := json.Unmarshal(env.Data, &p); err != nil || p.Room == "" {
			log.Warn().Str("module", "ws").Str("sid", string(client.ID())).Msg("bad join payload")
			return
		}
		client.SetName(p.Name)
		client.joinedRoom(domain.RoomName(p.Room))
		ctl.router.Join(client.ID(), domain.RoomName(p.Room), p.Name)

	case domain.EventChat:
		var p domain.ChatRequest
		if err := json.Unmarshal(env.Data, &p); err != nil {
			log.Warn().Str("module", "ws").Str("sid", string(client.ID())).Msg("bad chat payload")
			return
		}
		ctl.router.Chat(client.ID(), domain.RoomName(p.Room), p.Message, p.Sender)

	case domain.EventOffer, domain.EventAnswer, domain.EventICECandidate:
		var p domain.SignalRequest
		if err := json.Unmarshal(env.Data, &p); err != nil {
			log.Warn().Str("module", "ws").Str("sid", string(client.ID())).Str("kind", env.Event).Msg("bad signal payload")
			return
		}
		ctl.router.Signal(env.Event, client.ID(), domain.RoomName(p.Room), p.Payload)

	case domain.EventLeave:
		var p domain.LeaveRequest
		if err := json.Unmarshal(env.Data, &p); err != nil || p.Room == "" {
			log.Warn().Str("module", "ws").Str("sid", string(client.ID())).Msg("bad leave payload")
			return
		}
		client.leftRoom(domain.RoomName(p.Room))
		ctl.router.Leave(client.ID(), domain.RoomName(p.Room))

	default:
		log.Warn().Str("module", "ws").Str("event", env.Event).Msg("unknown event")
	}
}

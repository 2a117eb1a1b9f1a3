package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aditidalvi3/jamsync-backend/internal/adapters/rtc"
	"github.com/aditidalvi3/jamsync-backend/internal/adapters/spotify"
	"github.com/aditidalvi3/jamsync-backend/internal/adapters/ws"
	"github.com/aditidalvi3/jamsync-backend/internal/app"
	"github.com/aditidalvi3/jamsync-backend/internal/config"
	"github.com/aditidalvi3/jamsync-backend/internal/core"
)

// Deps collects everything the HTTP surface needs. Constructed once in main.
type Deps struct {
	Registry *core.Registry
	Router   *app.Router
	Spotify  *spotify.Client
	WS       *ws.Controller
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("JamSessions", store))

	h := NewHandlers(deps.Spotify, deps.Router)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := r.Group("/api")
	api.GET("/auth/login", h.Login)
	api.GET("/auth/callback", h.Callback)
	api.POST("/auth/refresh", h.Refresh)
	api.GET("/now-playing", h.NowPlaying)

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(200, deps.Registry.List())
	})
	api.GET("/rtc/config", func(c *gin.Context) {
		c.JSON(200, rtc.Configuration(cfg.STUNServers))
	})
	api.GET("/ws", deps.WS.HandleWS)

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}

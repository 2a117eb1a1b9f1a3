package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/aditidalvi3/jamsync-backend/internal/adapters/spotify"
	"github.com/aditidalvi3/jamsync-backend/internal/app"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
)

const stateKey = "oauth_state"

type Handlers struct {
	spotify *spotify.Client
	router  *app.Router
}

func NewHandlers(sp *spotify.Client, router *app.Router) *Handlers {
	return &Handlers{spotify: sp, router: router}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login redirects to the authorize page with a state nonce held in the
// cookie session so Callback can verify it.
func (h *Handlers) Login(c *gin.Context) {
	state := uuid.NewString()
	sess := sessions.Default(c)
	sess.Set(stateKey, state)
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("save oauth state")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}
	c.Redirect(http.StatusFound, h.spotify.AuthCodeURL(state))
}

func (h *Handlers) Callback(c *gin.Context) {
	sess := sessions.Default(c)
	want, _ := sess.Get(stateKey).(string)
	sess.Delete(stateKey)
	_ = sess.Save()

	if want == "" || c.Query("state") != want {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	tok, err := h.spotify.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("code exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "token exchange failed"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn(tok),
	})
}

func (h *Handlers) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing refresh_token"})
		return
	}

	tok, err := h.spotify.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("token refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "token refresh failed"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn(tok),
	})
}

// NowPlaying fetches the caller's current track and fans it out to the
// requested room in one step, then echoes the result to the caller.
func (h *Handlers) NowPlaying(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room"})
		return
	}
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
		return
	}

	track, err := h.spotify.CurrentlyPlaying(c.Request.Context(), token)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", room).Msg("currently playing fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream fetch failed"})
		return
	}

	h.router.NowPlaying(domain.RoomName(room), track)
	c.JSON(http.StatusOK, domain.NowPlaying{Track: track})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}

// expiresIn converts the token expiry to seconds-from-now. Tokens without
// an expiry (or already past it) report 0 rather than a negative value.
func expiresIn(tok *oauth2.Token) int64 {
	if tok.Expiry.IsZero() {
		return 0
	}
	if d := time.Until(tok.Expiry); d > 0 {
		return int64(d.Seconds())
	}
	return 0
}

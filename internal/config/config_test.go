package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	req := require.New(t)

	// Given no config file exists for the selected environment
	t.Setenv("CONFIG_ENV", "does-not-exist")

	// When loading
	cfg, err := Load()

	// Then defaults apply instead of an error
	req.NoError(err)
	req.Equal("release", cfg.Mode)
	req.Equal(8080, cfg.Port)
	req.Equal(int64(32768), cfg.ReadLimit)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(60*time.Second, cfg.PongWait)
	req.Equal(10*time.Second, cfg.WriteWait)
	req.Equal([]string{"http://localhost:3000"}, cfg.AllowedOrigins)
	req.Equal([]string{"stun:stun.l.google.com:19302"}, cfg.STUNServers)
}

func TestLoad_SpotifyCredentialsFromEnv(t *testing.T) {
	req := require.New(t)

	t.Setenv("CONFIG_ENV", "does-not-exist")
	t.Setenv("SPOTIFY_CLIENT_ID", "cid")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "csecret")
	t.Setenv("SPOTIFY_REDIRECT_URL", "http://localhost:8080/api/auth/callback")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("cid", cfg.Spotify.ClientID)
	req.Equal("csecret", cfg.Spotify.ClientSecret)
	req.Equal("http://localhost:8080/api/auth/callback", cfg.Spotify.RedirectURL)
}

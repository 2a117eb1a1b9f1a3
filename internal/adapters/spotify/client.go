// Package spotify is the proxy to the external music service: OAuth code
// exchange, token refresh and the currently-playing lookup. It normalizes
// responses into domain types and interprets nothing beyond status codes.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aditidalvi3/jamsync-backend/internal/config"
	"github.com/aditidalvi3/jamsync-backend/internal/domain"
	"golang.org/x/oauth2"
	spotifyauth "golang.org/x/oauth2/spotify"
)

const defaultAPIBase = "https://api.spotify.com"

type Client struct {
	oauth   *oauth2.Config
	http    *http.Client
	apiBase string
}

func New(cfg config.Spotify) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"user-read-currently-playing", "user-read-playback-state"},
			Endpoint:     spotifyauth.Endpoint,
		},
		http:    &http.Client{Timeout: 10 * time.Second},
		apiBase: defaultAPIBase,
	}
}

// AuthCodeURL returns the authorize redirect target carrying the state nonce.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode runs the authorization-code grant.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", err)
	}
	return tok, nil
}

// Refresh trades a refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh access token: %w", err)
	}
	return tok, nil
}

type currentlyPlayingResponse struct {
	Item *struct {
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
	} `json:"item"`
}

// CurrentlyPlaying fetches the user's playing track. A 204 or a response
// without an item means nothing is playing and yields (nil, nil), which is
// distinct from an error.
func (c *Client) CurrentlyPlaying(ctx context.Context, accessToken string) (*domain.Track, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/v1/me/player/currently-playing", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currently playing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("currently playing: unexpected status %d", resp.StatusCode)
	}

	var body currentlyPlayingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("currently playing decode: %w", err)
	}
	if body.Item == nil {
		return nil, nil
	}

	track := &domain.Track{Title: body.Item.Name}
	artists := make([]string, 0, len(body.Item.Artists))
	for _, a := range body.Item.Artists {
		artists = append(artists, a.Name)
	}
	track.Artist = strings.Join(artists, ", ")
	if len(body.Item.Album.Images) > 0 {
		track.AlbumArtURL = body.Item.Album.Images[0].URL
	}
	return track, nil
}

package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestExpiresIn_ClampsToZero(t *testing.T) {
	req := require.New(t)

	// A provider token without an expiry must not report a negative lifetime
	req.Zero(expiresIn(&oauth2.Token{}))

	// Nor must one that already expired
	req.Zero(expiresIn(&oauth2.Token{Expiry: time.Now().Add(-time.Hour)}))

	// A live token reports the remaining seconds
	got := expiresIn(&oauth2.Token{Expiry: time.Now().Add(time.Hour)})
	req.InDelta(3600, got, 2)
}

func TestBearerToken(t *testing.T) {
	req := require.New(t)

	req.Equal("abc", bearerToken("Bearer abc"))
	req.Empty(bearerToken("abc"))
	req.Empty(bearerToken(""))
}

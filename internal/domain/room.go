// Package domain contains entities without logic, just meta-data.
package domain

type (
	// RoomName is a caller-supplied opaque identifier. Empty names are
	// rejected at the router, not here.
	RoomName string

	// SessionID is assigned per connection and never reused.
	SessionID string
)

// Member is a read-only roster view of one participant (no transport fields).
type Member struct {
	ID   SessionID `json:"id"`
	Name string    `json:"name"`
}

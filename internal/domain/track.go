package domain

// Track is the normalized currently-playing result from the music service.
// The broadcast path forwards it verbatim and never inspects the fields.
type Track struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	AlbumArtURL string `json:"albumArtUrl"`
}

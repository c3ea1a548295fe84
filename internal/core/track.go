package core

import "strings"

// Track represents the currently loaded track or episode.
type Track struct {
	URI           string   `json:"uri"`
	Name          string   `json:"name"`
	ArtistNames   []string `json:"artist_names,omitempty"`
	ArtistURIs    []string `json:"artist_uris,omitempty"`
	AlbumName     string   `json:"album_name,omitempty"`
	AlbumURI      string   `json:"album_uri,omitempty"`
	ShowName      string   `json:"show_name,omitempty"`
	ShowURI       string   `json:"show_uri,omitempty"`
	AlbumCoverURL string   `json:"album_cover_url,omitempty"`
	DurationMS    int64    `json:"duration_ms"`
	DiscNumber    int      `json:"disc_number,omitempty"`
	TrackNumber   int      `json:"track_number,omitempty"`
	Explicit      bool     `json:"explicit,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
}

// IsEpisode returns true if the track is a podcast episode.
func (t *Track) IsEpisode() bool {
	return t != nil && strings.HasPrefix(t.URI, "spotify:episode:")
}

// Artist returns the primary artist name, or "" if unknown.
func (t *Track) Artist() string {
	if t == nil || len(t.ArtistNames) == 0 {
		return ""
	}
	return t.ArtistNames[0]
}

// ArtistLine joins all artist names for display.
func (t *Track) ArtistLine() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.ArtistNames, ", ")
}

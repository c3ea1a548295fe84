package core

import "strings"

// EntityKind selects fetch and cache behavior for metadata enrichment and
// browsing.
type EntityKind string

const (
	KindTrack    EntityKind = "track"
	KindAlbum    EntityKind = "album"
	KindArtist   EntityKind = "artist"
	KindPlaylist EntityKind = "playlist"
	KindShow     EntityKind = "show"
	KindEpisode  EntityKind = "episode"
)

// KindFromURI derives the entity kind from a spotify URI such as
// "spotify:album:abc123". Unknown or malformed URIs yield "".
func KindFromURI(uri string) EntityKind {
	parts := strings.Split(uri, ":")
	if len(parts) < 3 || parts[0] != "spotify" {
		return ""
	}
	switch k := EntityKind(parts[1]); k {
	case KindTrack, KindAlbum, KindArtist, KindPlaylist, KindShow, KindEpisode:
		return k
	}
	return ""
}

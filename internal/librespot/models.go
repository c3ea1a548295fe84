package librespot

// Status is the full playback snapshot from GET /status. It is authoritative
// over any event history.
type Status struct {
	Username       string `json:"username"`
	DeviceID       string `json:"device_id"`
	DeviceName     string `json:"device_name"`
	DeviceType     string `json:"device_type"`
	PlayOrigin     string `json:"play_origin"`
	Stopped        bool   `json:"stopped"`
	Paused         bool   `json:"paused"`
	Buffering      bool   `json:"buffering"`
	Volume         int    `json:"volume"`
	VolumeSteps    int    `json:"volume_steps"`
	RepeatContext  bool   `json:"repeat_context"`
	RepeatTrack    bool   `json:"repeat_track"`
	ShuffleContext bool   `json:"shuffle_context"`
	Track          *Track `json:"track"`
}

// Track is the daemon's track payload, shared by the status snapshot, the
// metadata event, and the track detail endpoint.
type Track struct {
	URI           string      `json:"uri"`
	Name          string      `json:"name"`
	ArtistNames   []string    `json:"artist_names"`
	Artists       []ArtistRef `json:"artists"`
	AlbumName     string      `json:"album_name"`
	AlbumURI      string      `json:"album_uri"`
	Album         *AlbumRef   `json:"album"`
	Show          *ShowRef    `json:"show"`
	AlbumCoverURL string      `json:"album_cover_url"`
	Position      int64       `json:"position"`
	Duration      int64       `json:"duration"`
	ReleaseDate   string      `json:"release_date"`
	PublishDate   string      `json:"publish_date"`
	TrackNumber   int         `json:"track_number"`
	DiscNumber    int         `json:"disc_number"`
	Explicit      bool        `json:"explicit"`
}

// ArtistRef is a lightweight artist reference inside other payloads.
type ArtistRef struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// AlbumRef is a lightweight album reference inside other payloads.
type AlbumRef struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// ShowRef is a lightweight show reference inside episode payloads.
type ShowRef struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// TrackRef is a list entry in album/playlist/artist payloads. Name and
// Duration may be blank; the enrichment scheduler fills them in on demand.
type TrackRef struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Duration    int64  `json:"duration"`
	TrackNumber int    `json:"track_number"`
	Explicit    bool   `json:"explicit"`
}

// QueueTrack is an entry in the /player/queue payload.
type QueueTrack struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Queue is the /player/queue payload and the queue event payload.
type Queue struct {
	PrevTracks []QueueTrack `json:"prev_tracks"`
	NextTracks []QueueTrack `json:"next_tracks"`
}

// AlbumDetails is the /metadata/album/{id} payload.
type AlbumDetails struct {
	URI         string      `json:"uri"`
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	ReleaseDate string      `json:"release_date"`
	CoverURL    string      `json:"cover_url"`
	NumTracks   int         `json:"num_tracks"`
	NumDiscs    int         `json:"num_discs"`
	Artists     []ArtistRef `json:"artists"`
	ArtistNames []string    `json:"artist_names"`
	Genres      []string    `json:"genres"`
	Tracks      []TrackRef  `json:"tracks"`
}

// ArtistDetails is the /metadata/artist/{id} payload.
type ArtistDetails struct {
	URI         string      `json:"uri"`
	Name        string      `json:"name"`
	Biography   string      `json:"biography"`
	PortraitURL string      `json:"portrait_url"`
	Genres      []string    `json:"genres"`
	TopTracks   []TrackRef  `json:"top_tracks"`
	Albums      []AlbumRef  `json:"albums"`
	Singles     []AlbumRef  `json:"singles"`
	Related     []ArtistRef `json:"related"`
}

// ShowDetails is the /metadata/show/{id} payload.
type ShowDetails struct {
	URI         string       `json:"uri"`
	Name        string       `json:"name"`
	Publisher   string       `json:"publisher"`
	Description string       `json:"description"`
	CoverURL    string       `json:"cover_url"`
	Episodes    []EpisodeRef `json:"episodes"`
}

// EpisodeRef is a list entry in show payloads.
type EpisodeRef struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Duration    int64  `json:"duration"`
	PublishDate string `json:"publish_date"`
}

// PlaylistDetails is the /metadata/playlist/{id} payload. Items is a page;
// TotalTracks is the full size.
type PlaylistDetails struct {
	URI              string     `json:"uri"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	OwnerDisplayName string     `json:"owner_display_name"`
	OwnerUsername    string     `json:"owner_username"`
	Collaborative    bool       `json:"collaborative"`
	TotalTracks      int        `json:"total_tracks"`
	ImageURL         string     `json:"image_url"`
	Items            []TrackRef `json:"items"`
}

// PlaylistRef is a rootlist entry.
type PlaylistRef struct {
	ID               string `json:"id"`
	URI              string `json:"uri"`
	Name             string `json:"name"`
	OwnerDisplayName string `json:"owner_display_name"`
	OwnerUsername    string `json:"owner_username"`
	ImageURL         string `json:"image_url"`
}

// Rootlist is the /metadata/rootlist payload. Total may exceed len(Playlists)
// when paginated.
type Rootlist struct {
	Playlists []PlaylistRef `json:"playlists"`
	Total     int           `json:"total"`
}

// Owner returns the best available owner name for display.
func (p PlaylistRef) Owner() string {
	if p.OwnerDisplayName != "" {
		return p.OwnerDisplayName
	}
	return p.OwnerUsername
}

// Owner returns the best available owner name for display.
func (p *PlaylistDetails) Owner() string {
	if p.OwnerDisplayName != "" {
		return p.OwnerDisplayName
	}
	return p.OwnerUsername
}

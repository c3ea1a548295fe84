package core

// Connection indicates whether the daemon event feed is attached.
type Connection int

const (
	Disconnected Connection = iota
	Connected
)

// TransportStatus represents the daemon's transport state. Stopped means
// there is no active playback session, which is distinct from Paused.
type TransportStatus string

const (
	StatusStopped TransportStatus = "stopped"
	StatusPaused  TransportStatus = "paused"
	StatusPlaying TransportStatus = "playing"
)

// PlaybackState is a point-in-time snapshot of everything the UI needs to
// render. The store replaces it wholesale on every change; consumers must
// never mutate a snapshot they receive.
type PlaybackState struct {
	Connection    Connection      `json:"connection"`
	Status        TransportStatus `json:"status"`
	Track         *Track          `json:"track,omitempty"`
	PositionMS    int64           `json:"position_ms"`
	Volume        int             `json:"volume"`
	MaxVolume     int             `json:"max_volume"`
	Shuffle       bool            `json:"shuffle"`
	RepeatContext bool            `json:"repeat_context"`
	RepeatTrack   bool            `json:"repeat_track"`
	ContextURI    string          `json:"context_uri,omitempty"`
	Queue         *Queue          `json:"queue,omitempty"`
	LastError     string          `json:"last_error,omitempty"`
}

// Connected returns true if the event feed is attached.
func (s *PlaybackState) Connected() bool {
	return s != nil && s.Connection == Connected
}

// Stopped returns true if there is no active playback session.
func (s *PlaybackState) Stopped() bool {
	return s == nil || s.Status == StatusStopped
}

// Playing returns true if the transport is actively playing.
func (s *PlaybackState) Playing() bool {
	return s != nil && s.Status == StatusPlaying
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Track == nil || s.Track.DurationMS <= 0 {
		return 0
	}
	pct := float64(s.PositionMS) / float64(s.Track.DurationMS) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// VolumePercent returns the volume as a percentage of the daemon's step count.
func (s *PlaybackState) VolumePercent() float64 {
	if s == nil || s.MaxVolume <= 0 {
		return 0
	}
	return float64(s.Volume) / float64(s.MaxVolume) * 100
}

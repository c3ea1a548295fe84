package core

// EventType tags a push event from the daemon.
type EventType string

const (
	EventMetadata       EventType = "metadata"
	EventPlaying        EventType = "playing"
	EventPaused         EventType = "paused"
	EventStopped        EventType = "stopped"
	EventInactive       EventType = "inactive"
	EventSeek           EventType = "seek"
	EventVolume         EventType = "volume"
	EventShuffleContext EventType = "shuffle_context"
	EventRepeatContext  EventType = "repeat_context"
	EventRepeatTrack    EventType = "repeat_track"
	EventQueue          EventType = "queue"
	EventContext        EventType = "context"
)

// Event is a decoded push event. Only the fields relevant to the event's
// type are populated; events with unrecognized tags are dropped before they
// reach this type.
type Event struct {
	Type       EventType
	Track      *Track
	PositionMS int64
	Volume     int
	Shuffle    bool
	Repeat     bool
	ContextURI string
	Queue      *Queue
}

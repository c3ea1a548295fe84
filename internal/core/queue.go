package core

// QueueTrack is a single entry in the playback queue. List payloads from the
// daemon frequently arrive with a blank Name; the enrichment layer fills
// those in lazily.
type QueueTrack struct {
	URI      string `json:"uri"`
	Name     string `json:"name,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Queued returns true if the entry was explicitly queued by the user rather
// than provided by the playing context.
func (t QueueTrack) Queued() bool {
	return t.Provider == "queue"
}

// Queue holds the tracks surrounding the current one.
type Queue struct {
	PreviousTracks []QueueTrack `json:"prev_tracks,omitempty"`
	NextTracks     []QueueTrack `json:"next_tracks,omitempty"`
}

// Len returns the total number of queue entries.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.PreviousTracks) + len(q.NextTracks)
}

// IsEmpty returns true if the queue has no entries.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

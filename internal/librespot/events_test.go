package librespot

import (
	"testing"

	"github.com/stronk-dev/croon/internal/core"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		check func(t *testing.T, ev core.Event)
	}{
		{
			name:  "metadata",
			frame: `{"type":"metadata","data":{"uri":"spotify:track:abc","name":"Song","artist_names":["A"],"position":1234,"duration":200000}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventMetadata {
					t.Fatalf("type = %s", ev.Type)
				}
				if ev.Track == nil || ev.Track.Name != "Song" {
					t.Errorf("track = %+v", ev.Track)
				}
				if ev.PositionMS != 1234 {
					t.Errorf("position = %d", ev.PositionMS)
				}
			},
		},
		{
			name:  "playing with context",
			frame: `{"type":"playing","data":{"context_uri":"spotify:playlist:xyz"}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventPlaying || ev.ContextURI != "spotify:playlist:xyz" {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "playing without payload",
			frame: `{"type":"playing"}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventPlaying || ev.ContextURI != "" {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "paused",
			frame: `{"type":"paused","data":{}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventPaused {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "seek",
			frame: `{"type":"seek","data":{"position":98765}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventSeek || ev.PositionMS != 98765 {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "volume",
			frame: `{"type":"volume","data":{"value":42}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventVolume || ev.Volume != 42 {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "shuffle",
			frame: `{"type":"shuffle_context","data":{"value":true}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventShuffleContext || !ev.Shuffle {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "repeat context",
			frame: `{"type":"repeat_context","data":{"value":true}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventRepeatContext || !ev.Repeat {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "repeat track off",
			frame: `{"type":"repeat_track","data":{"value":false}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventRepeatTrack || ev.Repeat {
					t.Errorf("ev = %+v", ev)
				}
			},
		},
		{
			name:  "queue",
			frame: `{"type":"queue","data":{"prev_tracks":[{"uri":"spotify:track:a"}],"next_tracks":[{"uri":"spotify:track:b","provider":"queue"}]}}`,
			check: func(t *testing.T, ev core.Event) {
				if ev.Type != core.EventQueue || ev.Queue == nil {
					t.Fatalf("ev = %+v", ev)
				}
				if len(ev.Queue.PreviousTracks) != 1 || len(ev.Queue.NextTracks) != 1 {
					t.Errorf("queue = %+v", ev.Queue)
				}
				if !ev.Queue.NextTracks[0].Queued() {
					t.Errorf("provider not carried: %+v", ev.Queue.NextTracks[0])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok, err := DecodeEvent([]byte(tt.frame))
			if err != nil {
				t.Fatalf("DecodeEvent() error = %v", err)
			}
			if !ok {
				t.Fatal("DecodeEvent() ok = false")
			}
			tt.check(t, ev)
		})
	}
}

func TestDecodeEventUnknownTagSkipped(t *testing.T) {
	_, ok, err := DecodeEvent([]byte(`{"type":"will_play","data":{"uri":"spotify:track:abc"}}`))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if ok {
		t.Error("unknown event tag should be skipped, not decoded")
	}
}

func TestDecodeEventBadJSON(t *testing.T) {
	if _, _, err := DecodeEvent([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed frame")
	}
}

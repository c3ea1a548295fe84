package librespot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/log"
)

const (
	reconnectMinWait = time.Second
	reconnectMaxWait = 30 * time.Second
	readTimeout      = 90 * time.Second
)

// FeedHandler receives decoded push events and connection transitions.
// OnEvent is called in frame-delivery order from a single goroutine; the
// daemon does not reorder events and neither does the feed.
type FeedHandler interface {
	OnConnect()
	OnDisconnect(err error)
	OnEvent(ev core.Event)
}

// Feed maintains a persistent WebSocket connection to the daemon's event
// endpoint, reconnecting with exponential backoff. Events missed during a
// gap are not replayed; the handler is expected to re-sync from a snapshot
// on every OnConnect.
type Feed struct {
	url     string
	handler FeedHandler
	dialer  *websocket.Dialer
}

// NewFeed creates an event feed for the given websocket URL
// (e.g. "ws://localhost:3678/events").
func NewFeed(url string, handler FeedHandler) *Feed {
	return &Feed{
		url:     url,
		handler: handler,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// Run connects and processes events until ctx is cancelled. It never returns
// a connection error; transient failures surface through OnDisconnect and
// trigger a reconnect.
func (f *Feed) Run(ctx context.Context) error {
	wait := reconnectMinWait
	for {
		conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
		if err != nil {
			log.Debugf("event feed: dial %s: %v", f.url, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
			if wait > reconnectMaxWait {
				wait = reconnectMaxWait
			}
			continue
		}

		wait = reconnectMinWait
		f.handler.OnConnect()
		err = f.readLoop(ctx, conn)
		_ = conn.Close()
		f.handler.OnDisconnect(err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectMinWait):
		}
	}
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		ev, ok, err := DecodeEvent(msg)
		if err != nil {
			log.Warnf("event feed: bad frame: %v", err)
			continue
		}
		if !ok {
			continue
		}
		f.handler.OnEvent(ev)
	}
}

// wireEvent is the framed JSON envelope on the socket.
type wireEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeEvent decodes one socket frame. ok is false for event tags this
// client does not recognize; those are skipped without error for forward
// compatibility.
func DecodeEvent(msg []byte) (core.Event, bool, error) {
	var wire wireEvent
	if err := json.Unmarshal(msg, &wire); err != nil {
		return core.Event{}, false, err
	}

	ev := core.Event{Type: core.EventType(wire.Type)}
	switch ev.Type {
	case core.EventMetadata:
		var track Track
		if err := json.Unmarshal(wire.Data, &track); err != nil {
			return core.Event{}, false, err
		}
		ev.Track = track.Core()
		ev.PositionMS = track.Position

	case core.EventPlaying, core.EventContext:
		var data struct {
			ContextURI string `json:"context_uri"`
		}
		if len(wire.Data) > 0 {
			if err := json.Unmarshal(wire.Data, &data); err != nil {
				return core.Event{}, false, err
			}
		}
		ev.ContextURI = data.ContextURI

	case core.EventPaused, core.EventStopped, core.EventInactive:
		// No payload of interest.

	case core.EventSeek:
		var data struct {
			Position int64 `json:"position"`
		}
		if err := json.Unmarshal(wire.Data, &data); err != nil {
			return core.Event{}, false, err
		}
		ev.PositionMS = data.Position

	case core.EventVolume:
		var data struct {
			Value int `json:"value"`
		}
		if err := json.Unmarshal(wire.Data, &data); err != nil {
			return core.Event{}, false, err
		}
		ev.Volume = data.Value

	case core.EventShuffleContext:
		var data struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(wire.Data, &data); err != nil {
			return core.Event{}, false, err
		}
		ev.Shuffle = data.Value

	case core.EventRepeatContext, core.EventRepeatTrack:
		var data struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(wire.Data, &data); err != nil {
			return core.Event{}, false, err
		}
		ev.Repeat = data.Value

	case core.EventQueue:
		var queue Queue
		if err := json.Unmarshal(wire.Data, &queue); err != nil {
			return core.Event{}, false, err
		}
		ev.Queue = queue.Core()

	default:
		return core.Event{}, false, nil
	}

	return ev, true, nil
}

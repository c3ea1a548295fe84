// Package player holds the authoritative client-side playback state. The
// daemon is the source of truth; the store mirrors it from REST snapshots
// and websocket push events and publishes immutable snapshots to consumers.
package player

import (
	"context"
	"sync"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/errors"
	"github.com/stronk-dev/croon/internal/librespot"
	"github.com/stronk-dev/croon/internal/log"
)

// API is the subset of the daemon client the store drives.
type API interface {
	GetStatus(ctx context.Context) (*librespot.Status, error)
	GetQueue(ctx context.Context) (*librespot.Queue, error)
	Play(ctx context.Context, opts librespot.PlayOptions) error
	Resume(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(ctx context.Context, positionMS int64, relative bool) error
	SetVolume(ctx context.Context, volume int, relative bool) error
	SetShuffleContext(ctx context.Context, shuffle bool) error
	SetRepeatContext(ctx context.Context, repeat bool) error
	SetRepeatTrack(ctx context.Context, repeat bool) error
	AddToQueue(ctx context.Context, uri string) error
}

// Store mirrors daemon playback state. It implements librespot.FeedHandler
// so it can be attached directly to the event feed. The mutex is never held
// across network calls.
type Store struct {
	mu      sync.Mutex
	state   core.PlaybackState
	api     API
	baseURL string
	session *Session
	updates chan core.PlaybackState
}

// NewStore creates a store in the disconnected, stopped state. baseURL is
// used to resolve relative artwork paths served by the daemon.
func NewStore(api API, baseURL string, session *Session) *Store {
	s := &Store{
		api:     api,
		baseURL: baseURL,
		session: session,
		updates: make(chan core.PlaybackState, 1),
	}
	s.state = core.PlaybackState{
		Connection: core.Disconnected,
		Status:     core.StatusStopped,
	}
	if session != nil {
		s.state.ContextURI = session.ContextURI()
	}
	return s
}

// Updates returns the snapshot channel. Intermediate snapshots may be
// coalesced; the latest one is always delivered.
func (s *Store) Updates() <-chan core.PlaybackState {
	return s.updates
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() core.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// publish enforces invariants and hands the new state to the consumer,
// replacing any undelivered snapshot. Caller must hold the mutex.
func (s *Store) publish() {
	if s.state.Status == core.StatusStopped {
		s.state.Track = nil
		s.state.PositionMS = 0
		s.state.Queue = nil
	}
	st := s.state
	select {
	case s.updates <- st:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- st:
		default:
		}
	}
}

// OnConnect marks the feed attached and re-syncs from a fresh snapshot.
// Events missed while disconnected are never replayed, so the snapshot is
// authoritative after every (re)connect.
func (s *Store) OnConnect() {
	s.mu.Lock()
	s.state.Connection = core.Connected
	s.state.LastError = ""
	s.publish()
	s.mu.Unlock()

	if err := s.Initialize(context.Background()); err != nil {
		log.Warnf("store: snapshot after connect: %v", err)
		s.mu.Lock()
		s.state.LastError = err.Error()
		s.publish()
		s.mu.Unlock()
	}
}

// OnDisconnect marks the feed detached. Playback state is kept so the UI can
// keep rendering the last known track while reconnecting.
func (s *Store) OnDisconnect(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Connection = core.Disconnected
	if err != nil {
		s.state.LastError = err.Error()
	}
	s.publish()
}

// Initialize fetches the full playback snapshot and replaces local state
// with it. A nil snapshot means the daemon has no session: stopped.
func (s *Store) Initialize(ctx context.Context) error {
	status, err := s.api.GetStatus(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if status == nil {
		s.state.Status = core.StatusStopped
		s.publish()
		return nil
	}

	s.state.Volume = status.Volume
	s.state.MaxVolume = status.VolumeSteps
	s.state.Shuffle = status.ShuffleContext
	s.state.RepeatContext = status.RepeatContext
	s.state.RepeatTrack = status.RepeatTrack

	// The daemon reports "stopped" in several ways: an explicit flag, a
	// missing play origin, or simply no track.
	if status.Stopped || status.PlayOrigin == "" || status.Track == nil {
		s.state.Status = core.StatusStopped
		s.publish()
		return nil
	}

	track := status.Track.Core()
	track.AlbumCoverURL = librespot.NormalizeImageURL(track.AlbumCoverURL, s.baseURL)
	s.state.Track = track
	s.state.PositionMS = status.Track.Position
	if status.Paused {
		s.state.Status = core.StatusPaused
	} else {
		s.state.Status = core.StatusPlaying
	}
	s.publish()

	go s.refreshQueue()
	return nil
}

// OnEvent applies one push event to the state.
func (s *Store) OnEvent(ev core.Event) {
	s.Apply(ev)
}

// Apply is the event reducer. Each event type touches only the fields it
// carries; everything else survives unchanged.
func (s *Store) Apply(ev core.Event) {
	s.mu.Lock()

	refetchQueue := false
	switch ev.Type {
	case core.EventMetadata:
		track := ev.Track
		if track != nil {
			track.AlbumCoverURL = librespot.NormalizeImageURL(track.AlbumCoverURL, s.baseURL)
		}
		s.state.Track = track
		s.state.PositionMS = ev.PositionMS
		if track == nil {
			s.state.Status = core.StatusStopped
		} else if s.state.Status == core.StatusStopped {
			s.state.Status = core.StatusPaused
		}
		refetchQueue = track != nil

	case core.EventPlaying:
		// A transport status needs a track; without one the next snapshot
		// re-sync settles it.
		if s.state.Track != nil {
			s.state.Status = core.StatusPlaying
			refetchQueue = true
		}
		if ev.ContextURI != "" {
			s.setContext(ev.ContextURI)
		}

	case core.EventPaused:
		if s.state.Track != nil {
			s.state.Status = core.StatusPaused
		}

	case core.EventStopped, core.EventInactive:
		s.state.Status = core.StatusStopped

	case core.EventSeek:
		s.state.PositionMS = ev.PositionMS

	case core.EventVolume:
		s.state.Volume = ev.Volume

	case core.EventShuffleContext:
		s.state.Shuffle = ev.Shuffle

	case core.EventRepeatContext:
		s.state.RepeatContext = ev.Repeat

	case core.EventRepeatTrack:
		s.state.RepeatTrack = ev.Repeat

	case core.EventQueue:
		s.state.Queue = ev.Queue

	case core.EventContext:
		if ev.ContextURI != "" {
			s.setContext(ev.ContextURI)
		}
	}

	s.publish()
	s.mu.Unlock()

	if refetchQueue {
		go s.refreshQueue()
	}
}

// setContext records the playing context and persists it so it survives a
// restart. Caller must hold the mutex.
func (s *Store) setContext(uri string) {
	if s.state.ContextURI == uri {
		return
	}
	s.state.ContextURI = uri
	if s.session != nil {
		if err := s.session.SetContextURI(uri); err != nil {
			log.Warnf("store: persist context: %v", err)
		}
	}
}

// refreshQueue fetches the queue and re-enters it through the reducer so
// queue updates follow a single code path.
func (s *Store) refreshQueue() {
	queue, err := s.api.GetQueue(context.Background())
	if err != nil {
		log.Debugf("store: queue fetch: %v", err)
		return
	}
	if queue == nil {
		return
	}
	s.Apply(core.Event{Type: core.EventQueue, Queue: queue.Core()})
}

// canCommand reports whether transport commands other than Play make sense
// right now. With no session or no connection they would only produce daemon
// errors, so they are gated client-side.
func (s *Store) canCommand() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Connection == core.Connected && s.state.Status != core.StatusStopped
}

// Play starts playback of a context or track URI. Unlike the other commands
// it is allowed while stopped: it is how a session gets started.
func (s *Store) Play(ctx context.Context, uri, skipToURI string) error {
	return s.api.Play(ctx, librespot.PlayOptions{URI: uri, SkipToURI: skipToURI})
}

// Resume resumes paused playback.
func (s *Store) Resume(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.Resume(ctx)
}

// Pause pauses playback.
func (s *Store) Pause(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.Pause(ctx)
}

// TogglePlayback resumes when paused and pauses when playing.
func (s *Store) TogglePlayback(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	st := s.Snapshot()
	if st.Playing() {
		return s.api.Pause(ctx)
	}
	return s.api.Resume(ctx)
}

// Next skips to the next track.
func (s *Store) Next(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.Next(ctx)
}

// Previous skips to the previous track.
func (s *Store) Previous(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.Previous(ctx)
}

// SeekAbsolute moves playback to positionMS. The local position is updated
// optimistically; the daemon's seek event will confirm it.
func (s *Store) SeekAbsolute(ctx context.Context, positionMS int64) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	if err := s.api.Seek(ctx, positionMS, false); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.PositionMS = positionMS
	s.publish()
	s.mu.Unlock()
	return nil
}

// SeekRelative moves playback by deltaMS from the current position.
func (s *Store) SeekRelative(ctx context.Context, deltaMS int64) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.Seek(ctx, deltaMS, true)
}

// SetVolume sets the volume in daemon steps.
func (s *Store) SetVolume(ctx context.Context, volume int) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.SetVolume(ctx, volume, false)
}

// ChangeVolume adjusts the volume by delta steps.
func (s *Store) ChangeVolume(ctx context.Context, delta int) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.SetVolume(ctx, delta, true)
}

// ToggleShuffle flips context shuffle.
func (s *Store) ToggleShuffle(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.SetShuffleContext(ctx, !s.Snapshot().Shuffle)
}

// SetRepeatContext enables or disables repeating the playing context.
func (s *Store) SetRepeatContext(ctx context.Context, repeat bool) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.SetRepeatContext(ctx, repeat)
}

// SetRepeatTrack enables or disables repeating the current track.
func (s *Store) SetRepeatTrack(ctx context.Context, repeat bool) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	return s.api.SetRepeatTrack(ctx, repeat)
}

// CycleRepeat steps repeat off -> context -> track -> off.
func (s *Store) CycleRepeat(ctx context.Context) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	st := s.Snapshot()
	switch {
	case !st.RepeatContext && !st.RepeatTrack:
		return s.api.SetRepeatContext(ctx, true)
	case st.RepeatContext:
		if err := s.api.SetRepeatContext(ctx, false); err != nil {
			return err
		}
		return s.api.SetRepeatTrack(ctx, true)
	default:
		return s.api.SetRepeatTrack(ctx, false)
	}
}

// AddToQueue appends a track to the playback queue.
func (s *Store) AddToQueue(ctx context.Context, uri string) error {
	if !s.canCommand() {
		return errors.ErrPlaybackStopped
	}
	if err := s.api.AddToQueue(ctx, uri); err != nil {
		return err
	}
	go s.refreshQueue()
	return nil
}

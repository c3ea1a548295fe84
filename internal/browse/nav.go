// Package browse implements drill-down navigation over albums, artists,
// shows, and playlists. A monotonic generation counter gates fetch results
// so a response for a view the user already left is silently discarded.
package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/librespot"
	"github.com/stronk-dev/croon/internal/log"
)

// Fetcher is the subset of the daemon client the navigator drives.
type Fetcher interface {
	GetAlbum(ctx context.Context, id string) (*librespot.AlbumDetails, error)
	GetArtist(ctx context.Context, id string) (*librespot.ArtistDetails, error)
	GetShow(ctx context.Context, id string) (*librespot.ShowDetails, error)
	GetPlaylist(ctx context.Context, id string, limit, offset int) (*librespot.PlaylistDetails, error)
}

// Detail is the fetched payload of one navigation entry. Exactly one of the
// typed fields is set, matching Kind.
type Detail struct {
	Kind     core.EntityKind
	Album    *librespot.AlbumDetails
	Artist   *librespot.ArtistDetails
	Show     *librespot.ShowDetails
	Playlist *librespot.PlaylistDetails
}

// Title returns the display name of the detail.
func (d *Detail) Title() string {
	switch {
	case d == nil:
		return ""
	case d.Album != nil:
		return d.Album.Name
	case d.Artist != nil:
		return d.Artist.Name
	case d.Show != nil:
		return d.Show.Name
	case d.Playlist != nil:
		return d.Playlist.Name
	}
	return ""
}

// Entry is one level of the navigation stack.
type Entry struct {
	URI     string
	Kind    core.EntityKind
	Loading bool
	Err     error
	Detail  *Detail
}

// Stack is the navigation stack. Push starts an async detail fetch; results
// that arrive after the entry was popped (or replaced) are discarded.
type Stack struct {
	mu       sync.Mutex
	fetcher  Fetcher
	pageSize int
	entries  []*Entry
	gen      uint64
	onUpdate func()
}

// NewStack creates a navigator. pageSize bounds playlist item pages.
// onUpdate fires after any entry changes; it may be nil.
func NewStack(fetcher Fetcher, pageSize int, onUpdate func()) *Stack {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Stack{fetcher: fetcher, pageSize: pageSize, onUpdate: onUpdate}
}

// Depth returns the number of stacked entries.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Current returns the top entry, or nil when the stack is empty.
func (s *Stack) Current() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Push navigates into uri. Track and episode URIs are not navigable and are
// rejected.
func (s *Stack) Push(uri string) error {
	kind := core.KindFromURI(uri)
	switch kind {
	case core.KindAlbum, core.KindArtist, core.KindShow, core.KindPlaylist:
	default:
		return fmt.Errorf("cannot navigate into %q", uri)
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	entry := &Entry{URI: uri, Kind: kind, Loading: true}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	go s.load(gen, entry)
	return nil
}

// Pop leaves the current view. Any in-flight fetch for it becomes stale.
// If the revealed entry never finished loading (its own fetch was discarded
// when the user navigated deeper, or it errored), the fetch is restarted.
func (s *Stack) Pop() {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.entries = s.entries[:len(s.entries)-1]

	var reload *Entry
	gen := s.gen
	if n := len(s.entries); n > 0 {
		if top := s.entries[n-1]; top.Detail == nil {
			top.Loading = true
			top.Err = nil
			reload = top
		}
	}
	s.mu.Unlock()

	if reload != nil {
		go s.load(gen, reload)
	}
}

// Reset clears the whole stack.
func (s *Stack) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.entries = nil
}

func (s *Stack) load(gen uint64, entry *Entry) {
	detail, err := s.fetchDetail(entry.Kind, entry.URI, 0)

	s.mu.Lock()
	if gen != s.gen {
		// The user navigated away while this was in flight.
		s.mu.Unlock()
		log.Debugf("browse: discarding stale fetch for %s", entry.URI)
		return
	}
	entry.Loading = false
	entry.Detail = detail
	entry.Err = err
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}
}

func (s *Stack) fetchDetail(kind core.EntityKind, uri string, offset int) (*Detail, error) {
	ctx := context.Background()
	id := librespot.ExtractID(uri)

	switch kind {
	case core.KindAlbum:
		album, err := s.fetcher.GetAlbum(ctx, id)
		if err != nil {
			return nil, err
		}
		if album == nil {
			return nil, fmt.Errorf("album %s not found", id)
		}
		return &Detail{Kind: kind, Album: album}, nil

	case core.KindArtist:
		artist, err := s.fetcher.GetArtist(ctx, id)
		if err != nil {
			return nil, err
		}
		if artist == nil {
			return nil, fmt.Errorf("artist %s not found", id)
		}
		return &Detail{Kind: kind, Artist: artist}, nil

	case core.KindShow:
		show, err := s.fetcher.GetShow(ctx, id)
		if err != nil {
			return nil, err
		}
		if show == nil {
			return nil, fmt.Errorf("show %s not found", id)
		}
		return &Detail{Kind: kind, Show: show}, nil

	case core.KindPlaylist:
		playlist, err := s.fetcher.GetPlaylist(ctx, id, s.pageSize, offset)
		if err != nil {
			return nil, err
		}
		if playlist == nil {
			return nil, fmt.Errorf("playlist %s not found", id)
		}
		return &Detail{Kind: kind, Playlist: playlist}, nil
	}

	return nil, fmt.Errorf("unsupported kind %q", kind)
}

// LoadMore fetches the next page of items for the current playlist view.
// It is a no-op for non-playlist views, while loading, or when the playlist
// is fully loaded.
func (s *Stack) LoadMore() {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	entry := s.entries[len(s.entries)-1]
	if entry.Loading || entry.Kind != core.KindPlaylist || entry.Detail == nil || entry.Detail.Playlist == nil {
		s.mu.Unlock()
		return
	}
	playlist := entry.Detail.Playlist
	offset := len(playlist.Items)
	if offset >= playlist.TotalTracks {
		s.mu.Unlock()
		return
	}
	entry.Loading = true
	gen := s.gen
	s.mu.Unlock()

	go func() {
		page, err := s.fetcher.GetPlaylist(context.Background(), librespot.ExtractID(entry.URI), s.pageSize, offset)

		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		entry.Loading = false
		if err != nil {
			entry.Err = err
		} else if page != nil {
			playlist.Items = append(playlist.Items, page.Items...)
			if page.TotalTracks > 0 {
				playlist.TotalTracks = page.TotalTracks
			}
		}
		onUpdate := s.onUpdate
		s.mu.Unlock()

		if onUpdate != nil {
			onUpdate()
		}
	}()
}

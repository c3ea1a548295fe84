package browse

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stronk-dev/croon/internal/librespot"
)

// fakeFetcher serves canned details, optionally blocking until released so
// tests can race navigation against in-flight fetches.
type fakeFetcher struct {
	mu      sync.Mutex
	block   chan struct{}
	albums  map[string]*librespot.AlbumDetails
	artists map[string]*librespot.ArtistDetails
	lists   map[string]*librespot.PlaylistDetails
	calls   int
}

func (f *fakeFetcher) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeFetcher) GetAlbum(ctx context.Context, id string) (*librespot.AlbumDetails, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.wait()
	return f.albums[id], nil
}

func (f *fakeFetcher) GetArtist(ctx context.Context, id string) (*librespot.ArtistDetails, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.wait()
	return f.artists[id], nil
}

func (f *fakeFetcher) GetShow(ctx context.Context, id string) (*librespot.ShowDetails, error) {
	f.wait()
	return nil, nil
}

func (f *fakeFetcher) GetPlaylist(ctx context.Context, id string, limit, offset int) (*librespot.PlaylistDetails, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.wait()
	pl := f.lists[id]
	if pl == nil {
		return nil, nil
	}
	// Serve the requested page.
	page := *pl
	if offset > len(pl.Items) {
		offset = len(pl.Items)
	}
	end := offset + limit
	if end > len(pl.Items) {
		end = len(pl.Items)
	}
	page.Items = pl.Items[offset:end]
	return &page, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestPushLoadsDetail(t *testing.T) {
	f := &fakeFetcher{albums: map[string]*librespot.AlbumDetails{
		"a1": {URI: "spotify:album:a1", Name: "First Album"},
	}}
	s := NewStack(f, 50, nil)

	if err := s.Push("spotify:album:a1"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	waitFor(t, func() bool {
		e := s.Current()
		return e != nil && !e.Loading
	})

	e := s.Current()
	if e.Detail == nil || e.Detail.Title() != "First Album" {
		t.Errorf("detail = %+v", e.Detail)
	}
}

func TestPushRejectsNonNavigable(t *testing.T) {
	s := NewStack(&fakeFetcher{}, 50, nil)

	for _, uri := range []string{"spotify:track:t1", "spotify:episode:e1", "bogus", ""} {
		if err := s.Push(uri); err == nil {
			t.Errorf("Push(%q) expected error", uri)
		}
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d after rejected pushes", s.Depth())
	}
}

func TestPopDiscardsStaleFetch(t *testing.T) {
	f := &fakeFetcher{
		block: make(chan struct{}),
		albums: map[string]*librespot.AlbumDetails{
			"slow": {URI: "spotify:album:slow", Name: "Slow Album"},
		},
	}
	var updates int
	var mu sync.Mutex
	s := NewStack(f, 50, func() {
		mu.Lock()
		updates++
		mu.Unlock()
	})

	_ = s.Push("spotify:album:slow")
	// Leave before the fetch completes.
	s.Pop()
	close(f.block)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if updates != 0 {
		t.Error("stale fetch produced an update")
	}
	if s.Current() != nil {
		t.Error("stack not empty after pop")
	}
}

func TestPopReloadsInterruptedEntry(t *testing.T) {
	block := make(chan struct{})
	f := &fakeFetcher{
		block: block,
		albums: map[string]*librespot.AlbumDetails{
			"a1": {URI: "spotify:album:a1", Name: "First Album"},
			"a2": {URI: "spotify:album:a2", Name: "Second Album"},
		},
	}
	s := NewStack(f, 50, nil)

	// Navigate deeper before the first fetch finishes: its result becomes
	// stale and is discarded even though the entry stays on the stack.
	_ = s.Push("spotify:album:a1")
	_ = s.Push("spotify:album:a2")
	close(block)

	waitFor(t, func() bool {
		e := s.Current()
		return e != nil && !e.Loading && e.Detail != nil
	})

	// Popping back must restart the interrupted fetch, not leave the entry
	// loading forever.
	s.Pop()
	waitFor(t, func() bool {
		e := s.Current()
		return e != nil && !e.Loading && e.Detail != nil
	})

	e := s.Current()
	if e.URI != "spotify:album:a1" || e.Detail.Title() != "First Album" {
		t.Errorf("after pop-back: %+v", e)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls != 3 {
		t.Errorf("fetch calls = %d, want 3 (a1, a2, a1 reload)", f.calls)
	}
}

func TestResetDiscardsInFlight(t *testing.T) {
	block := make(chan struct{})
	f := &fakeFetcher{
		block: block,
		artists: map[string]*librespot.ArtistDetails{
			"x": {URI: "spotify:artist:x", Name: "X"},
		},
	}
	s := NewStack(f, 50, nil)

	_ = s.Push("spotify:artist:x")
	// Reset makes the in-flight artist fetch stale.
	s.Reset()
	close(block)

	time.Sleep(50 * time.Millisecond)
	if s.Current() != nil {
		t.Error("reset stack should be empty")
	}
}

func TestLoadMoreAppendsPlaylistPage(t *testing.T) {
	items := make([]librespot.TrackRef, 7)
	for i := range items {
		items[i] = librespot.TrackRef{URI: "spotify:track:t" + string(rune('a'+i))}
	}
	f := &fakeFetcher{lists: map[string]*librespot.PlaylistDetails{
		"p1": {URI: "spotify:playlist:p1", Name: "P", TotalTracks: 7, Items: items},
	}}
	s := NewStack(f, 3, nil)

	_ = s.Push("spotify:playlist:p1")
	waitFor(t, func() bool {
		e := s.Current()
		return e != nil && !e.Loading
	})
	if got := len(s.Current().Detail.Playlist.Items); got != 3 {
		t.Fatalf("first page = %d items, want 3", got)
	}

	s.LoadMore()
	waitFor(t, func() bool {
		return len(s.Current().Detail.Playlist.Items) == 6
	})

	s.LoadMore()
	waitFor(t, func() bool {
		return len(s.Current().Detail.Playlist.Items) == 7
	})

	// Fully loaded: further LoadMore must not fetch.
	f.mu.Lock()
	calls := f.calls
	f.mu.Unlock()
	s.LoadMore()
	time.Sleep(20 * time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls != calls {
		t.Error("LoadMore fetched past the end")
	}
}

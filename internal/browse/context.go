package browse

import (
	"context"
	"sync"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/librespot"
	"github.com/stronk-dev/croon/internal/log"
)

// ContextResolver turns a playing context URI into a display name. Playlist
// lookups request a single item: only the header matters here, and context
// names change rarely enough that results are cached for the process life.
type ContextResolver struct {
	mu       sync.Mutex
	fetcher  Fetcher
	names    map[string]string
	inFlight map[string]bool
	onUpdate func()
}

// NewContextResolver creates a resolver. onUpdate fires when a name becomes
// available; it may be nil.
func NewContextResolver(fetcher Fetcher, onUpdate func()) *ContextResolver {
	return &ContextResolver{
		fetcher:  fetcher,
		names:    make(map[string]string),
		inFlight: make(map[string]bool),
		onUpdate: onUpdate,
	}
}

// Name returns the display name for uri if it is already known, starting a
// background fetch otherwise. Unresolvable URIs yield "".
func (r *ContextResolver) Name(uri string) string {
	if uri == "" {
		return ""
	}

	r.mu.Lock()
	if name, ok := r.names[uri]; ok {
		r.mu.Unlock()
		return name
	}
	if r.inFlight[uri] {
		r.mu.Unlock()
		return ""
	}
	r.inFlight[uri] = true
	r.mu.Unlock()

	go r.resolve(uri)
	return ""
}

func (r *ContextResolver) resolve(uri string) {
	name, err := r.lookup(uri)

	r.mu.Lock()
	delete(r.inFlight, uri)
	if err != nil {
		log.Debugf("browse: resolve context %s: %v", uri, err)
		r.mu.Unlock()
		return
	}
	r.names[uri] = name
	onUpdate := r.onUpdate
	r.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}
}

func (r *ContextResolver) lookup(uri string) (string, error) {
	ctx := context.Background()
	id := librespot.ExtractID(uri)

	switch core.KindFromURI(uri) {
	case core.KindPlaylist:
		playlist, err := r.fetcher.GetPlaylist(ctx, id, 1, 0)
		if err != nil || playlist == nil {
			return "", err
		}
		return playlist.Name, nil
	case core.KindAlbum:
		album, err := r.fetcher.GetAlbum(ctx, id)
		if err != nil || album == nil {
			return "", err
		}
		return album.Name, nil
	case core.KindArtist:
		artist, err := r.fetcher.GetArtist(ctx, id)
		if err != nil || artist == nil {
			return "", err
		}
		return artist.Name, nil
	case core.KindShow:
		show, err := r.fetcher.GetShow(ctx, id)
		if err != nil || show == nil {
			return "", err
		}
		return show.Name, nil
	}
	return "", nil
}

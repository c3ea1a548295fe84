package librespot

import (
	"context"
	"strconv"
)

// PlayOptions configures a play request.
type PlayOptions struct {
	URI       string `json:"uri"`
	SkipToURI string `json:"skip_to_uri,omitempty"`
	Paused    bool   `json:"paused"`
}

// GetStatus fetches the full playback snapshot. Returns nil when the daemon
// has no session to report.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var status Status
	ok, err := c.get(ctx, "/status", &status)
	if err != nil || !ok {
		return nil, err
	}
	return &status, nil
}

// Play starts playback of a context or track URI.
func (c *Client) Play(ctx context.Context, opts PlayOptions) error {
	return c.post(ctx, "/player/play", opts)
}

// Resume resumes paused playback.
func (c *Client) Resume(ctx context.Context) error {
	return c.post(ctx, "/player/resume", nil)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context) error {
	return c.post(ctx, "/player/pause", nil)
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context) error {
	return c.post(ctx, "/player/next", struct{}{})
}

// Previous skips to the previous track.
func (c *Client) Previous(ctx context.Context) error {
	return c.post(ctx, "/player/prev", nil)
}

// Seek moves the playback position. When relative is true, position is a
// delta from the current position.
func (c *Client) Seek(ctx context.Context, positionMS int64, relative bool) error {
	return c.post(ctx, "/player/seek", map[string]interface{}{
		"position": positionMS,
		"relative": relative,
	})
}

// SetVolume sets the volume in daemon steps (0..volume_steps).
func (c *Client) SetVolume(ctx context.Context, volume int, relative bool) error {
	return c.post(ctx, "/player/volume", map[string]interface{}{
		"volume":   volume,
		"relative": relative,
	})
}

// SetShuffleContext enables or disables context shuffle.
func (c *Client) SetShuffleContext(ctx context.Context, shuffle bool) error {
	return c.post(ctx, "/player/shuffle_context", map[string]bool{
		"shuffle_context": shuffle,
	})
}

// SetRepeatContext enables or disables repeating the playing context.
func (c *Client) SetRepeatContext(ctx context.Context, repeat bool) error {
	return c.post(ctx, "/player/repeat_context", map[string]bool{
		"repeat_context": repeat,
	})
}

// SetRepeatTrack enables or disables repeating the current track.
func (c *Client) SetRepeatTrack(ctx context.Context, repeat bool) error {
	return c.post(ctx, "/player/repeat_track", map[string]bool{
		"repeat_track": repeat,
	})
}

// AddToQueue appends a track to the playback queue.
func (c *Client) AddToQueue(ctx context.Context, uri string) error {
	return c.post(ctx, "/player/add_to_queue", map[string]string{"uri": uri})
}

// GetQueue fetches the current playback queue. Returns nil when no session
// is active.
func (c *Client) GetQueue(ctx context.Context) (*Queue, error) {
	var queue Queue
	ok, err := c.get(ctx, "/player/queue", &queue)
	if err != nil || !ok {
		return nil, err
	}
	return &queue, nil
}

// GetTrack fetches full track metadata by ID.
func (c *Client) GetTrack(ctx context.Context, id string) (*Track, error) {
	var track Track
	ok, err := c.get(ctx, "/metadata/track/"+id, &track)
	if err != nil || !ok {
		return nil, err
	}
	return &track, nil
}

// GetAlbum fetches full album metadata by ID.
func (c *Client) GetAlbum(ctx context.Context, id string) (*AlbumDetails, error) {
	var album AlbumDetails
	ok, err := c.get(ctx, "/metadata/album/"+id, &album)
	if err != nil || !ok {
		return nil, err
	}
	return &album, nil
}

// GetArtist fetches full artist metadata by ID.
func (c *Client) GetArtist(ctx context.Context, id string) (*ArtistDetails, error) {
	var artist ArtistDetails
	ok, err := c.get(ctx, "/metadata/artist/"+id, &artist)
	if err != nil || !ok {
		return nil, err
	}
	return &artist, nil
}

// GetShow fetches full show metadata by ID.
func (c *Client) GetShow(ctx context.Context, id string) (*ShowDetails, error) {
	var show ShowDetails
	ok, err := c.get(ctx, "/metadata/show/"+id, &show)
	if err != nil || !ok {
		return nil, err
	}
	return &show, nil
}

// GetPlaylist fetches playlist metadata with a page of items.
func (c *Client) GetPlaylist(ctx context.Context, id string, limit, offset int) (*PlaylistDetails, error) {
	path := BuildURL("/metadata/playlist/"+id, map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	})
	var playlist PlaylistDetails
	ok, err := c.get(ctx, path, &playlist)
	if err != nil || !ok {
		return nil, err
	}
	return &playlist, nil
}

// GetRootlist fetches a page of the user's playlist collection.
func (c *Client) GetRootlist(ctx context.Context, limit, offset int) (*Rootlist, error) {
	path := BuildURL("/metadata/rootlist", map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	})
	var rootlist Rootlist
	ok, err := c.get(ctx, path, &rootlist)
	if err != nil || !ok {
		return nil, err
	}
	return &rootlist, nil
}

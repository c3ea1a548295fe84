package librespot

import "github.com/stronk-dev/croon/internal/core"

// Core converts the wire track into the transport-agnostic core type.
func (t *Track) Core() *core.Track {
	if t == nil {
		return nil
	}
	ct := &core.Track{
		URI:           t.URI,
		Name:          t.Name,
		ArtistNames:   t.ArtistNames,
		AlbumName:     t.AlbumName,
		AlbumURI:      t.AlbumURI,
		AlbumCoverURL: t.AlbumCoverURL,
		DurationMS:    t.Duration,
		DiscNumber:    t.DiscNumber,
		TrackNumber:   t.TrackNumber,
		Explicit:      t.Explicit,
		ReleaseDate:   t.ReleaseDate,
	}
	if ct.ReleaseDate == "" {
		ct.ReleaseDate = t.PublishDate
	}
	for _, a := range t.Artists {
		ct.ArtistURIs = append(ct.ArtistURIs, a.URI)
		if len(t.ArtistNames) == 0 {
			ct.ArtistNames = append(ct.ArtistNames, a.Name)
		}
	}
	if t.Album != nil {
		if ct.AlbumName == "" {
			ct.AlbumName = t.Album.Name
		}
		if ct.AlbumURI == "" {
			ct.AlbumURI = t.Album.URI
		}
	}
	if t.Show != nil {
		ct.ShowName = t.Show.Name
		ct.ShowURI = t.Show.URI
	}
	return ct
}

// Core converts the wire queue into the core type.
func (q *Queue) Core() *core.Queue {
	if q == nil {
		return nil
	}
	cq := &core.Queue{}
	for _, t := range q.PrevTracks {
		cq.PreviousTracks = append(cq.PreviousTracks, core.QueueTrack{URI: t.URI, Name: t.Name, Provider: t.Provider})
	}
	for _, t := range q.NextTracks {
		cq.NextTracks = append(cq.NextTracks, core.QueueTrack{URI: t.URI, Name: t.Name, Provider: t.Provider})
	}
	return cq
}

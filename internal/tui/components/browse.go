package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stronk-dev/croon/internal/browse"
	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/enrich"
	"github.com/stronk-dev/croon/internal/tui/styles"
)

// browseItem is one selectable row of a detail view.
type browseItem struct {
	uri   string
	label string
	dim   string
	// blank is true when the daemon omitted the label and enrichment
	// should supply it.
	blank bool
}

// Browse displays the current navigation stack entry.
type Browse struct {
	cursor int
	offset int
}

// NewBrowse creates a new Browse component
func NewBrowse() *Browse {
	return &Browse{}
}

// ResetCursor moves the cursor back to the top, for when the view changes.
func (b *Browse) ResetCursor() {
	b.cursor = 0
	b.offset = 0
}

// SelectNext moves the cursor down.
func (b *Browse) SelectNext(entry *browse.Entry) {
	if b.cursor < len(items(entry))-1 {
		b.cursor++
	}
}

// SelectPrev moves the cursor up.
func (b *Browse) SelectPrev() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// SelectedURI returns the URI under the cursor, or "".
func (b *Browse) SelectedURI(entry *browse.Entry) string {
	rows := items(entry)
	if b.cursor < 0 || b.cursor >= len(rows) {
		return ""
	}
	return rows[b.cursor].uri
}

// VisibleRows reports in-view rows for the enrichment dispatcher. Playlist
// views get a pagination sentinel while partially loaded.
func (b *Browse) VisibleRows(entry *browse.Entry, resolve func(uri string) string, height, margin int) []enrich.Row {
	rows := items(entry)

	start := b.offset - margin
	if start < 0 {
		start = 0
	}
	end := b.offset + height + margin

	var out []enrich.Row
	for i := start; i < end && i < len(rows); i++ {
		row := rows[i]
		known := !row.blank || resolve(row.uri) != ""
		out = append(out, enrich.Row{ID: row.uri, NameKnown: known})
	}

	if entry != nil && entry.Kind == core.KindPlaylist && entry.Detail != nil && entry.Detail.Playlist != nil {
		pl := entry.Detail.Playlist
		if end >= len(rows) && len(pl.Items) < pl.TotalTracks {
			out = append(out, enrich.Row{Sentinel: true})
		}
	}
	return out
}

// Render renders the browse panel.
func (b *Browse) Render(entry *browse.Entry, width, height int, focused bool, resolve func(uri string) string) string {
	heading := "Browse"
	if entry != nil && entry.Detail != nil {
		heading = entry.Detail.Title()
	}
	title := styles.PanelTitle(truncate(heading, width-6), focused)

	var content string
	switch {
	case entry == nil:
		content = styles.Muted.Render("Select a playlist, album, or artist")
	case entry.Err != nil:
		content = styles.Disconnected.Render(entry.Err.Error())
	case entry.Loading && entry.Detail == nil:
		content = styles.Muted.Render("Loading...")
	default:
		content = b.renderItems(entry, width-4, height-4, resolve)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (b *Browse) renderItems(entry *browse.Entry, width, maxLines int, resolve func(uri string) string) string {
	rows := items(entry)
	if len(rows) == 0 {
		return styles.Muted.Render("Empty")
	}

	if b.cursor >= len(rows) {
		b.cursor = len(rows) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}

	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visibleCount {
		b.offset = b.cursor - visibleCount + 1
	}

	start := b.offset
	end := start + visibleCount
	if end > len(rows) {
		end = len(rows)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		row := rows[i]

		label := row.label
		if row.blank {
			if name := resolve(row.uri); name != "" {
				label = name
			}
		}
		var line string
		if label == "" {
			line = styles.Dim.Render(truncate(row.uri, width-4))
		} else {
			line = truncate(label, width-4)
			if row.dim != "" {
				line += " " + styles.Dim.Render(row.dim)
			}
		}

		if i == b.cursor {
			lines = append(lines, styles.Highlight.Render("> ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}

	if end < len(rows) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("  ...%d more", len(rows)-end)))
	}
	if entry.Loading {
		lines = append(lines, styles.Dim.Render("  loading more..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// items flattens a detail view into selectable rows.
func items(entry *browse.Entry) []browseItem {
	if entry == nil || entry.Detail == nil {
		return nil
	}
	d := entry.Detail

	var rows []browseItem
	switch {
	case d.Album != nil:
		for _, t := range d.Album.Tracks {
			rows = append(rows, browseItem{
				uri:   t.URI,
				label: t.Name,
				dim:   FormatMS(t.Duration),
				blank: t.Name == "",
			})
		}

	case d.Artist != nil:
		for _, t := range d.Artist.TopTracks {
			rows = append(rows, browseItem{
				uri:   t.URI,
				label: t.Name,
				dim:   FormatMS(t.Duration),
				blank: t.Name == "",
			})
		}
		for _, a := range d.Artist.Albums {
			rows = append(rows, browseItem{uri: a.URI, label: a.Name, dim: "album"})
		}
		for _, a := range d.Artist.Singles {
			rows = append(rows, browseItem{uri: a.URI, label: a.Name, dim: "single"})
		}
		for _, a := range d.Artist.Related {
			rows = append(rows, browseItem{uri: a.URI, label: a.Name, dim: "related"})
		}

	case d.Show != nil:
		for _, e := range d.Show.Episodes {
			rows = append(rows, browseItem{
				uri:   e.URI,
				label: e.Name,
				dim:   e.PublishDate,
				blank: e.Name == "",
			})
		}

	case d.Playlist != nil:
		for _, t := range d.Playlist.Items {
			rows = append(rows, browseItem{
				uri:   t.URI,
				label: t.Name,
				dim:   FormatMS(t.Duration),
				blank: t.Name == "",
			})
		}
	}
	return rows
}

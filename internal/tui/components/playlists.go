package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stronk-dev/croon/internal/enrich"
	"github.com/stronk-dev/croon/internal/librespot"
	"github.com/stronk-dev/croon/internal/tui/styles"
)

// Playlists displays the user's playlist collection with a cursor and a
// trailing load-more sentinel when more pages exist.
type Playlists struct {
	cursor int
	offset int
}

// NewPlaylists creates a new Playlists component
func NewPlaylists() *Playlists {
	return &Playlists{}
}

// SelectNext moves the cursor down.
func (p *Playlists) SelectNext(count int) {
	if p.cursor < count-1 {
		p.cursor++
	}
}

// SelectPrev moves the cursor up.
func (p *Playlists) SelectPrev() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// Selected returns the cursor index.
func (p *Playlists) Selected() int {
	return p.cursor
}

// VisibleRows reports in-view rows for the enrichment dispatcher, including
// the pagination sentinel when the viewport reaches the end of a partial
// list.
func (p *Playlists) VisibleRows(playlists []librespot.PlaylistRef, total, height, margin int) []enrich.Row {
	start := p.offset - margin
	if start < 0 {
		start = 0
	}
	end := p.offset + height + margin

	var rows []enrich.Row
	for i := start; i < end && i < len(playlists); i++ {
		// Rootlist entries always carry names; only the sentinel matters.
		rows = append(rows, enrich.Row{ID: playlists[i].URI, NameKnown: true})
	}
	if end >= len(playlists) && len(playlists) < total {
		rows = append(rows, enrich.Row{Sentinel: true})
	}
	return rows
}

// Render renders the playlists panel.
func (p *Playlists) Render(playlists []librespot.PlaylistRef, total, width, height int, focused, loading bool) string {
	title := styles.PanelTitle("Playlists", focused)

	var content string
	if len(playlists) == 0 {
		if loading {
			content = styles.Muted.Render("Loading...")
		} else {
			content = styles.Muted.Render("No playlists")
		}
	} else {
		content = p.renderList(playlists, total, width-4, height-4, loading)
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

func (p *Playlists) renderList(playlists []librespot.PlaylistRef, total, width, maxLines int, loading bool) string {
	if p.cursor >= len(playlists) {
		p.cursor = len(playlists) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}

	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the cursor in view.
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+visibleCount {
		p.offset = p.cursor - visibleCount + 1
	}

	start := p.offset
	end := start + visibleCount
	if end > len(playlists) {
		end = len(playlists)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		pl := playlists[i]
		line := truncate(pl.Name, width-4)
		if owner := pl.Owner(); owner != "" {
			line += " " + styles.Dim.Render(truncate(owner, 16))
		}
		if i == p.cursor {
			lines = append(lines, styles.Highlight.Render("> ")+line)
		} else {
			lines = append(lines, "  "+line)
		}
	}

	switch {
	case loading:
		lines = append(lines, styles.Dim.Render("  loading more..."))
	case len(playlists) < total:
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("  %d of %d", len(playlists), total)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

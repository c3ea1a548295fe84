package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/enrich"
	"github.com/stronk-dev/croon/internal/tui/styles"
)

// Queue displays the playback queue.
type Queue struct {
	offset int
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// ScrollDown scrolls the queue down
func (q *Queue) ScrollDown() {
	q.offset++
}

// ScrollUp scrolls the queue up
func (q *Queue) ScrollUp() {
	if q.offset > 0 {
		q.offset--
	}
}

// VisibleRows reports which queue entries are in or near the viewport, for
// the enrichment dispatcher. margin rows beyond each edge are included so
// names are usually ready before the user scrolls to them.
func (q *Queue) VisibleRows(queue *core.Queue, height, margin int, resolve func(uri string) string) []enrich.Row {
	if queue == nil {
		return nil
	}
	tracks := queue.NextTracks

	start := q.offset - margin
	if start < 0 {
		start = 0
	}
	end := q.offset + height + margin
	if end > len(tracks) {
		end = len(tracks)
	}

	rows := make([]enrich.Row, 0, end-start)
	for i := start; i < end; i++ {
		t := tracks[i]
		known := t.Name != "" || resolve(t.URI) != ""
		rows = append(rows, enrich.Row{ID: t.URI, NameKnown: known})
	}
	return rows
}

// Render renders the queue panel. resolve maps a URI to an enriched display
// name, or "" when not fetched yet.
func (q *Queue) Render(queue *core.Queue, width, height int, focused bool, resolve func(uri string) string) string {
	title := styles.PanelTitle("Queue", focused)

	var content string
	if queue == nil || len(queue.NextTracks) == 0 {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderTracks(queue, width-4, height-4, resolve)
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

func (q *Queue) renderTracks(queue *core.Queue, width, maxLines int, resolve func(uri string) string) string {
	tracks := queue.NextTracks

	if q.offset >= len(tracks) {
		q.offset = len(tracks) - 1
	}
	if q.offset < 0 {
		q.offset = 0
	}

	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := q.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		t := tracks[i]

		name := t.Name
		if name == "" {
			name = resolve(t.URI)
		}
		var line string
		if name == "" {
			line = styles.Dim.Render(truncate(t.URI, width-8))
		} else {
			line = truncate(name, width-8)
		}

		marker := " "
		if t.Queued() {
			marker = "+"
		}
		lines = append(lines, fmt.Sprintf("%2d. %s %s", i+1, marker, line))
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("  ...%d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

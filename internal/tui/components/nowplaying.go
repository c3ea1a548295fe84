package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/tui/styles"
)

// NowPlaying displays the currently playing track.
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel. contextName may be "" while the
// playing context is still resolving.
func (n *NowPlaying) Render(state core.PlaybackState, contextName string, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	switch {
	case !state.Connected():
		content = styles.Disconnected.Render("Connecting to daemon...")
	case state.Stopped() || state.Track == nil:
		content = styles.Muted.Render("Nothing playing")
	default:
		content = n.renderTrack(state, contextName, width-4)
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

func (n *NowPlaying) renderTrack(state core.PlaybackState, contextName string, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.Playing())
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(track.Name)

	artist := styles.Subtitle.Render(track.ArtistLine())
	var album string
	if track.IsEpisode() {
		album = styles.Dim.Render(track.ShowName)
	} else {
		album = styles.Dim.Render(track.AlbumName)
	}

	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	progressBar := styles.ProgressBar(state.ProgressPercent(), progressWidth)
	progress := fmt.Sprintf("%s %s %s",
		FormatMS(state.PositionMS),
		progressBar,
		FormatMS(track.DurationMS))

	var extras []string
	if state.MaxVolume > 0 {
		extras = append(extras, fmt.Sprintf("🔊 %.0f%%", state.VolumePercent()))
	}
	if state.Shuffle {
		extras = append(extras, "🔀 shuffle")
	}
	if state.RepeatTrack {
		extras = append(extras, "🔂 track")
	} else if state.RepeatContext {
		extras = append(extras, "🔁 context")
	}
	if contextName != "" {
		extras = append(extras, "🗂 "+contextName)
	}
	extraLine := styles.Muted.Render(join(extras, "  "))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+album,
		"",
		progress,
		"",
		extraLine,
	)
}

// FormatMS formats a millisecond duration as m:ss.
func FormatMS(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func join(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

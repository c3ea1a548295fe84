package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stronk-dev/croon/internal/librespot"
)

var (
	playlistsLimit  int
	playlistsOffset int
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List your playlists",
	RunE:  runPlaylists,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <uri-or-id>",
	Short: "Show a playlist's tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

func init() {
	playlistsCmd.Flags().IntVar(&playlistsLimit, "limit", 0, "page size (default from config)")
	playlistsCmd.Flags().IntVar(&playlistsOffset, "offset", 0, "page offset")
	playlistShowCmd.Flags().IntVar(&playlistsLimit, "limit", 0, "page size (default from config)")
	playlistShowCmd.Flags().IntVar(&playlistsOffset, "offset", 0, "page offset")

	playlistsCmd.AddCommand(playlistShowCmd)
	rootCmd.AddCommand(playlistsCmd)
}

func pageSize() int {
	if playlistsLimit > 0 {
		return playlistsLimit
	}
	return cfg.Rootlist.PageSize
}

func runPlaylists(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rootlist, err := daemonClient().GetRootlist(ctx, pageSize(), playlistsOffset)
	if err != nil {
		return fmt.Errorf("failed to get playlists: %w", err)
	}
	if rootlist == nil || len(rootlist.Playlists) == 0 {
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"empty": true})
		} else {
			fmt.Println("No playlists")
		}
		return nil
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(rootlist)
	}

	table := NewTable("NAME", "OWNER", "URI")
	for _, p := range rootlist.Playlists {
		table.Row(TruncateString(p.Name, 40), p.Owner(), p.URI)
	}
	table.Flush()

	shown := playlistsOffset + len(rootlist.Playlists)
	if rootlist.Total > shown {
		fmt.Printf("\n%d of %d (use --offset %d for more)\n", shown, rootlist.Total, shown)
	}
	return nil
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Accept a full URI or a bare ID.
	id := args[0]
	if strings.HasPrefix(id, "spotify:") {
		id = librespot.ExtractID(id)
	}

	playlist, err := daemonClient().GetPlaylist(ctx, id, pageSize(), playlistsOffset)
	if err != nil {
		return fmt.Errorf("failed to get playlist: %w", err)
	}
	if playlist == nil {
		return fmt.Errorf("playlist %s not found", id)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(playlist)
	}

	fmt.Printf("%s — %s (%d tracks)\n", playlist.Name, playlist.Owner(), playlist.TotalTracks)
	if playlist.Description != "" {
		fmt.Printf("%s\n", playlist.Description)
	}
	fmt.Println()

	table := NewTable("#", "TRACK", "LENGTH")
	for i, t := range playlist.Items {
		table.Row(strconv.Itoa(playlistsOffset+i+1), displayName(t.Name, t.URI), FormatDurationMS(t.Duration))
	}
	table.Flush()
	return nil
}

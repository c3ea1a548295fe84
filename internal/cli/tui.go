package cli

import (
	"github.com/spf13/cobra"

	"github.com/stronk-dev/croon/internal/tui"
)

var (
	uiKiosk  bool
	uiLayout string
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive terminal UI",
	Long: `Launch a live terminal UI showing playback state, the queue, your
playlists, and a browser for albums, artists, shows, and playlists.

State follows the daemon's push events; nothing is polled.`,
	RunE: runUI,
}

func init() {
	uiCmd.Flags().BoolVar(&uiKiosk, "kiosk", false, "now-playing only, no panels")
	uiCmd.Flags().StringVar(&uiLayout, "layout", "", "layout: auto, wide, or narrow")

	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if uiKiosk {
		cfg.UI.Kiosk = true
	}
	if uiLayout != "" {
		cfg.UI.Layout = uiLayout
		if err := cfg.UI.Validate(); err != nil {
			return err
		}
	}
	return tui.Run(cfg)
}

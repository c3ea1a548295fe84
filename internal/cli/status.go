package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current playback status",
	Long:  `Shows the daemon's current playback state: track, position, volume, shuffle.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client := daemonClient()
	status, err := client.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if status == nil || status.Track == nil {
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"stopped": true,
			})
		} else {
			fmt.Println("Nothing playing")
		}
		return nil
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(status)
	}

	track := status.Track.Core()
	state := "Playing"
	if status.Paused {
		state = "Paused"
	}
	if status.Stopped || status.PlayOrigin == "" {
		state = "Stopped"
	}

	fmt.Printf("%s %s\n", StatusIcon(!status.Paused && !status.Stopped), state)
	fmt.Printf("  Track:    %s\n", track.Name)
	fmt.Printf("  Artist:   %s\n", track.ArtistLine())
	if track.IsEpisode() {
		fmt.Printf("  Show:     %s\n", track.ShowName)
	} else if track.AlbumName != "" {
		fmt.Printf("  Album:    %s\n", track.AlbumName)
	}
	fmt.Printf("  Position: %s / %s  %s\n",
		FormatDurationMS(status.Track.Position),
		FormatDurationMS(track.DurationMS),
		FormatProgress(status.Track.Position, track.DurationMS, 20))
	if status.VolumeSteps > 0 {
		fmt.Printf("  Volume:   %d%%\n", status.Volume*100/status.VolumeSteps)
	}
	fmt.Printf("  Shuffle:  %s\n", StatusIcon(status.ShuffleContext))
	switch {
	case status.RepeatTrack:
		fmt.Printf("  Repeat:   track\n")
	case status.RepeatContext:
		fmt.Printf("  Repeat:   context\n")
	}
	if Verbose() {
		fmt.Printf("  Device:   %s (%s)\n", status.DeviceName, status.DeviceType)
		fmt.Printf("  URI:      %s\n", track.URI)
	}

	return nil
}

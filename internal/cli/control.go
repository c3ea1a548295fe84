package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stronk-dev/croon/internal/librespot"
)

var playSkipTo string

var playCmd = &cobra.Command{
	Use:   "play [uri]",
	Short: "Start or resume playback",
	Long: `Start playback of a context or track URI, or resume when no URI is given.

Examples:
  croon play                                  # resume
  croon play spotify:album:4m2880jivSbbyEGAKfITCa
  croon play spotify:playlist:37i9dQZF1DXcBWIGoYBM5M --skip-to spotify:track:...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume playback",
	RunE:  runResume,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	RunE:  runNext,
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track",
	RunE:  runPrev,
}

var seekRelative bool

var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the current track",
	Long: `Seek to a position in the current track.

Position is seconds, mm:ss, or a signed delta with --relative.

Examples:
  croon seek 90
  croon seek 1:30
  croon seek -- -15 --relative`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

var (
	volumeUp   bool
	volumeDown bool
)

var volumeCmd = &cobra.Command{
	Use:   "volume [percent]",
	Short: "Set or adjust volume",
	Long: `Set the playback volume (0-100) or adjust it up/down.

Examples:
  croon volume 50      # Set volume to 50%
  croon volume --up    # Increase volume by 10%
  croon volume --down  # Decrease volume by 10%`,
	RunE: runVolume,
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle [on|off]",
	Short: "Toggle or set context shuffle",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShuffle,
}

var repeatCmd = &cobra.Command{
	Use:   "repeat [context|track] [on|off]",
	Short: "Toggle or set repeat",
	Long: `Toggle or set repeat for the playing context or the current track.

With no arguments the context repeat is toggled.

Examples:
  croon repeat              # toggle context repeat
  croon repeat track        # toggle track repeat
  croon repeat context off`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRepeat,
}

func init() {
	playCmd.Flags().StringVar(&playSkipTo, "skip-to", "", "start the context at this track URI")
	seekCmd.Flags().BoolVarP(&seekRelative, "relative", "r", false, "seek by a delta from the current position")
	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "Increase volume by 10%")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "Decrease volume by 10%")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(repeatCmd)
}

func confirm(status string, icon string) {
	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": status})
	} else {
		fmt.Printf("%s %s\n", icon, strings.ToUpper(status[:1])+status[1:])
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := daemonClient()

	if len(args) == 0 {
		if err := client.Resume(ctx); err != nil {
			return fmt.Errorf("failed to resume: %w", err)
		}
		confirm("playing", "▶")
		return nil
	}

	uri := args[0]
	if err := client.Play(ctx, librespot.PlayOptions{URI: uri, SkipToURI: playSkipTo}); err != nil {
		return fmt.Errorf("failed to play %s: %w", uri, err)
	}
	confirm("playing", "▶")
	return nil
}

func runPause(cmd *cobra.Command, args []string) error {
	if err := daemonClient().Pause(context.Background()); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}
	confirm("paused", "⏸")
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	if err := daemonClient().Resume(context.Background()); err != nil {
		return fmt.Errorf("failed to resume: %w", err)
	}
	confirm("playing", "▶")
	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	if err := daemonClient().Next(context.Background()); err != nil {
		return fmt.Errorf("failed to skip: %w", err)
	}
	confirm("skipped", "⏭")
	return nil
}

func runPrev(cmd *cobra.Command, args []string) error {
	if err := daemonClient().Previous(context.Background()); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	confirm("previous", "⏮")
	return nil
}

func runSeek(cmd *cobra.Command, args []string) error {
	positionMS, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	if err := daemonClient().Seek(context.Background(), positionMS, seekRelative); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	confirm("seeked", "⏩")
	return nil
}

// parsePosition accepts seconds ("90"), mm:ss ("1:30"), or a signed delta
// ("-15"). The result is milliseconds.
func parsePosition(s string) (int64, error) {
	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		m, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || m < 0 || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid position: %s", s)
		}
		return (time.Duration(m)*time.Minute + time.Duration(sec)*time.Second).Milliseconds(), nil
	}

	sec, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position: %s", s)
	}
	return (time.Duration(sec) * time.Second).Milliseconds(), nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := daemonClient()

	status, err := client.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	if status == nil || status.VolumeSteps == 0 {
		return fmt.Errorf("daemon reported no volume range")
	}

	switch {
	case volumeUp:
		return client.SetVolume(ctx, status.VolumeSteps/10, true)
	case volumeDown:
		return client.SetVolume(ctx, -status.VolumeSteps/10, true)
	case len(args) == 1:
		pct, err := strconv.Atoi(args[0])
		if err != nil || pct < 0 || pct > 100 {
			return fmt.Errorf("volume must be 0-100, got %q", args[0])
		}
		return client.SetVolume(ctx, pct*status.VolumeSteps/100, false)
	default:
		pct := 0
		if status.VolumeSteps > 0 {
			pct = status.Volume * 100 / status.VolumeSteps
		}
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]int{"volume": pct})
		}
		fmt.Printf("Volume: %d%%\n", pct)
		return nil
	}
}

func runShuffle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := daemonClient()

	var target bool
	if len(args) == 1 {
		switch args[0] {
		case "on":
			target = true
		case "off":
			target = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
	} else {
		status, err := client.GetStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		if status == nil {
			return fmt.Errorf("nothing playing")
		}
		target = !status.ShuffleContext
	}

	if err := client.SetShuffleContext(ctx, target); err != nil {
		return fmt.Errorf("failed to set shuffle: %w", err)
	}

	state := "off"
	if target {
		state = "on"
	}
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]bool{"shuffle": target})
	}
	fmt.Printf("🔀 Shuffle %s\n", state)
	return nil
}

func runRepeat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := daemonClient()

	mode := "context"
	if len(args) >= 1 {
		mode = args[0]
	}
	if mode != "context" && mode != "track" {
		return fmt.Errorf("expected context or track, got %q", mode)
	}

	var target bool
	if len(args) == 2 {
		switch args[1] {
		case "on":
			target = true
		case "off":
			target = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}
	} else {
		status, err := client.GetStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}
		if status == nil {
			return fmt.Errorf("nothing playing")
		}
		if mode == "track" {
			target = !status.RepeatTrack
		} else {
			target = !status.RepeatContext
		}
	}

	var err error
	if mode == "track" {
		err = client.SetRepeatTrack(ctx, target)
	} else {
		err = client.SetRepeatContext(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("failed to set repeat: %w", err)
	}

	state := "off"
	if target {
		state = "on"
	}
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"mode": mode, "repeat": target})
	}
	fmt.Printf("🔁 Repeat %s %s\n", mode, state)
	return nil
}

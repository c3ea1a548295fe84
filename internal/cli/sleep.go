package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stronk-dev/croon/internal/player"
)

var sleepCmd = &cobra.Command{
	Use:   "sleep <duration>",
	Short: "Pause playback after a delay",
	Long: `Arm a sleep timer that pauses playback after the given duration.

The timer lives in this process: the command blocks with a countdown until
the timer fires or Ctrl+C cancels it. The daemon is not involved until the
pause is sent.

Examples:
  croon sleep 30m
  croon sleep 1h15m`,
	Args: cobra.ExactArgs(1),
	RunE: runSleep,
}

func init() {
	rootCmd.AddCommand(sleepCmd)
}

func runSleep(cmd *cobra.Command, args []string) error {
	d, err := time.ParseDuration(args[0])
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid duration: %s", args[0])
	}

	client := daemonClient()
	fired := make(chan struct{})
	timer := player.NewSleepTimer(func() {
		if err := client.Pause(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to pause: %v\n", err)
		}
		close(fired)
	})
	timer.Set(d)
	defer timer.Cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-fired:
			fmt.Println("\r💤 Paused                    ")
			return nil
		case <-sigCh:
			fmt.Println("\rSleep timer cancelled        ")
			return nil
		case <-ticker.C:
			remaining := timer.Remaining()
			fmt.Printf("\r💤 Pausing in %s   ", FormatDurationMS(remaining.Milliseconds()))
		}
	}
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stronk-dev/croon/internal/core"
	"github.com/stronk-dev/croon/internal/librespot"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow playback changes in real-time",
	Long: `Stream the daemon's push events and print them as they happen.

Events tracked:
  - Track changes
  - Play/Pause/Stop
  - Seeks
  - Volume changes
  - Shuffle and context changes`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")

	rootCmd.AddCommand(tailCmd)
}

// tailPrinter implements librespot.FeedHandler by printing each event.
type tailPrinter struct{}

func (tailPrinter) OnConnect() {
	printEventLine("🔌", "connected", "")
}

func (tailPrinter) OnDisconnect(err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	printEventLine("🔌", "disconnected", detail)
}

func (tailPrinter) OnEvent(ev core.Event) {
	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"time":  time.Now().Format(time.RFC3339),
			"event": ev.Type,
			"track": ev.Track,
		})
		return
	}

	switch ev.Type {
	case core.EventMetadata:
		if ev.Track != nil {
			printEventLine("🎵", "track", fmt.Sprintf("%s — %s", ev.Track.ArtistLine(), ev.Track.Name))
		}
	case core.EventPlaying:
		printEventLine("▶", "playing", ev.ContextURI)
	case core.EventPaused:
		printEventLine("⏸", "paused", "")
	case core.EventStopped:
		printEventLine("⏹", "stopped", "")
	case core.EventInactive:
		printEventLine("⏹", "inactive", "")
	case core.EventSeek:
		printEventLine("⏩", "seek", FormatDurationMS(ev.PositionMS))
	case core.EventVolume:
		printEventLine("🔊", "volume", fmt.Sprintf("%d", ev.Volume))
	case core.EventShuffleContext:
		printEventLine("🔀", "shuffle", fmt.Sprintf("%v", ev.Shuffle))
	case core.EventRepeatContext:
		printEventLine("🔁", "repeat context", fmt.Sprintf("%v", ev.Repeat))
	case core.EventRepeatTrack:
		printEventLine("🔂", "repeat track", fmt.Sprintf("%v", ev.Repeat))
	case core.EventQueue:
		printEventLine("📜", "queue", fmt.Sprintf("%d tracks", ev.Queue.Len()))
	case core.EventContext:
		printEventLine("🗂", "context", ev.ContextURI)
	}
}

func printEventLine(emoji, event, detail string) {
	var prefix string
	if tailTimestamp {
		prefix = time.Now().Format("15:04:05") + " "
	}
	if !tailNoEmoji {
		prefix += emoji + " "
	}
	if detail != "" {
		fmt.Printf("%s%s: %s\n", prefix, event, detail)
	} else {
		fmt.Printf("%s%s\n", prefix, event)
	}
}

func runTail(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	feed := librespot.NewFeed(cfg.Daemon.WSURL, tailPrinter{})
	if err := feed.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

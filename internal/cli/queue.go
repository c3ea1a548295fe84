package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the playback queue",
	RunE:  runQueue,
}

var queueAddCmd = &cobra.Command{
	Use:   "add <uri>",
	Short: "Add a track to the queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueAdd,
}

func init() {
	queueCmd.AddCommand(queueAddCmd)
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	queue, err := daemonClient().GetQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to get queue: %w", err)
	}
	if queue == nil || (len(queue.PrevTracks) == 0 && len(queue.NextTracks) == 0) {
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"empty": true})
		} else {
			fmt.Println("Queue is empty")
		}
		return nil
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(queue)
	}

	table := NewTable("", "TRACK", "SOURCE")
	for _, t := range queue.PrevTracks {
		table.Row("✓", displayName(t.Name, t.URI), t.Provider)
	}
	for i, t := range queue.NextTracks {
		marker := fmt.Sprintf("%d", i+1)
		if i == 0 {
			marker = "▶"
		}
		table.Row(marker, displayName(t.Name, t.URI), t.Provider)
	}
	table.Flush()
	return nil
}

// displayName falls back to the URI when the daemon omitted the name.
func displayName(name, uri string) string {
	if name != "" {
		return name
	}
	return uri
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	uri := args[0]
	if err := daemonClient().AddToQueue(context.Background(), uri); err != nil {
		return fmt.Errorf("failed to queue %s: %w", uri, err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"queued": uri})
	}
	fmt.Printf("➕ Queued %s\n", uri)
	return nil
}

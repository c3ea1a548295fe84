package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stronk-dev/croon/internal/config"
	"github.com/stronk-dev/croon/internal/errors"
	"github.com/stronk-dev/croon/internal/librespot"
	"github.com/stronk-dev/croon/internal/log"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool
	apiURL  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "croon",
	Short: "Control a go-librespot player from the command line",
	Long: `Croon is a control surface for a go-librespot daemon: playback status,
transport commands, queue and playlist browsing, and a live terminal UI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.croonrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "daemon API URL (overrides config)")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if apiURL != "" {
		cfg.Daemon.APIURL = apiURL
		cfg.Daemon.WSURL = ""
		cfg.ApplyDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := log.Setup(log.Options{
		Enabled: cfg.Log.Enabled,
		Dir:     logDir(),
		Level:   cfg.Log.Level,
		JSON:    cfg.Log.JSON,
	}); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	return nil
}

func logDir() string {
	if cfg.Log.Dir != "" {
		return cfg.Log.Dir
	}
	return filepath.Join(config.StateDir(), "logs")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if suggestion := errors.GetSuggestion(err); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
		}
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// daemonClient builds a client for the configured daemon.
func daemonClient() *librespot.Client {
	client := librespot.New(cfg.Daemon.APIURL)
	if verbose {
		client.SetVerbose(true, func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		})
	}
	return client
}

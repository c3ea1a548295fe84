package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.croonrc, $XDG_CONFIG_HOME/croon/config.toml, ~/.config/croon/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// StateDir returns the directory for runtime state (session file, logs).
func StateDir() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "croon")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "croon")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".croonrc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "croon", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Daemon
	if v := os.Getenv("CROON_DAEMON_API_URL"); v != "" {
		cfg.Daemon.APIURL = strings.TrimRight(v, "/")
		cfg.Daemon.WSURL = deriveWSURL(cfg.Daemon.APIURL)
	}
	if v := os.Getenv("CROON_DAEMON_WS_URL"); v != "" {
		cfg.Daemon.WSURL = v
	}

	// UI
	if v := os.Getenv("CROON_UI_LAYOUT"); v != "" {
		cfg.UI.Layout = v
	}
	if v := os.Getenv("CROON_UI_KIOSK"); v != "" {
		cfg.UI.Kiosk = v == "1" || strings.EqualFold(v, "true")
	}

	// Enrich
	if v := os.Getenv("CROON_ENRICH_MAX_CONCURRENT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Enrich.MaxConcurrent = i
		}
	}

	// Log
	if v := os.Getenv("CROON_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CROON_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
		cfg.Log.Enabled = true
	}
}

// deriveWSURL turns the HTTP base URL into the websocket event endpoint.
func deriveWSURL(apiURL string) string {
	ws := apiURL
	switch {
	case strings.HasPrefix(ws, "https://"):
		ws = "wss://" + strings.TrimPrefix(ws, "https://")
	case strings.HasPrefix(ws, "http://"):
		ws = "ws://" + strings.TrimPrefix(ws, "http://")
	}
	return strings.TrimRight(ws, "/") + "/events"
}

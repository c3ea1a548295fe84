package config

// Config is the root configuration structure.
type Config struct {
	Daemon   DaemonConfig   `toml:"daemon"`
	UI       UIConfig       `toml:"ui"`
	Enrich   EnrichConfig   `toml:"enrich"`
	Rootlist RootlistConfig `toml:"rootlist"`
	Log      LogConfig      `toml:"log"`
}

// DaemonConfig holds go-librespot connection settings.
type DaemonConfig struct {
	APIURL string `toml:"api_url"`
	WSURL  string `toml:"ws_url"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Layout           string `toml:"layout"`
	Kiosk            bool   `toml:"kiosk"`
	HideOnDisconnect bool   `toml:"hide_on_disconnect"`
	PanelMaxRows     int    `toml:"panel_max_rows"`
	WidthBreakpoint  int    `toml:"width_breakpoint"`
}

// EnrichConfig holds metadata fetch scheduler settings.
type EnrichConfig struct {
	MaxConcurrent int `toml:"max_concurrent"`
	MaxRetries    int `toml:"max_retries"`
}

// RootlistConfig holds playlist collection paging settings.
type RootlistConfig struct {
	PageSize int `toml:"page_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
	Dir     string `toml:"dir"`
	JSON    bool   `toml:"json"`
}

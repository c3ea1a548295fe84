package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Daemon: DaemonConfig{
			APIURL: "http://localhost:3678",
		},
		UI: UIConfig{
			Layout:          "auto",
			PanelMaxRows:    12,
			WidthBreakpoint: 80,
		},
		Enrich: EnrichConfig{
			MaxConcurrent: 4,
			MaxRetries:    2,
		},
		Rootlist: RootlistConfig{
			PageSize: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Daemon.APIURL == "" {
		c.Daemon.APIURL = d.Daemon.APIURL
	}
	if c.Daemon.WSURL == "" {
		c.Daemon.WSURL = deriveWSURL(c.Daemon.APIURL)
	}

	if c.UI.Layout == "" {
		c.UI.Layout = d.UI.Layout
	}
	if c.UI.PanelMaxRows == 0 {
		c.UI.PanelMaxRows = d.UI.PanelMaxRows
	}
	if c.UI.WidthBreakpoint == 0 {
		c.UI.WidthBreakpoint = d.UI.WidthBreakpoint
	}

	if c.Enrich.MaxConcurrent == 0 {
		c.Enrich.MaxConcurrent = d.Enrich.MaxConcurrent
	}
	if c.Enrich.MaxRetries == 0 {
		c.Enrich.MaxRetries = d.Enrich.MaxRetries
	}

	if c.Rootlist.PageSize == 0 {
		c.Rootlist.PageSize = d.Rootlist.PageSize
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

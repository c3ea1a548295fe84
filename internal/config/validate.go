package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Daemon.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("daemon: %w", err))
	}
	if err := c.UI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui: %w", err))
	}
	if err := c.Enrich.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("enrich: %w", err))
	}
	if err := c.Rootlist.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rootlist: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks DaemonConfig for errors.
func (c *DaemonConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must use http or https, got %q", u.Scheme)
	}
	if c.WSURL != "" && !strings.HasPrefix(c.WSURL, "ws://") && !strings.HasPrefix(c.WSURL, "wss://") {
		return fmt.Errorf("ws_url must use ws or wss, got %q", c.WSURL)
	}
	return nil
}

// Validate checks UIConfig for errors.
func (c *UIConfig) Validate() error {
	switch c.Layout {
	case "", "auto", "wide", "narrow":
		// valid
	default:
		return fmt.Errorf("invalid layout: %s (must be auto, wide, or narrow)", c.Layout)
	}
	if c.PanelMaxRows < 0 {
		return errors.New("panel_max_rows must be non-negative")
	}
	if c.WidthBreakpoint < 0 {
		return errors.New("width_breakpoint must be non-negative")
	}
	return nil
}

// Validate checks EnrichConfig for errors.
func (c *EnrichConfig) Validate() error {
	if c.MaxConcurrent < 1 {
		return errors.New("max_concurrent must be at least 1")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries must be non-negative")
	}
	return nil
}

// Validate checks RootlistConfig for errors.
func (c *RootlistConfig) Validate() error {
	if c.PageSize < 1 {
		return errors.New("page_size must be at least 1")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package config

import (
	"fmt"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateDashboard(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateLogging()
}

var validDatasetFormats = map[string]bool{
	"auto": true,
	"csv":  true,
	"json": true,
}

func (c *Config) validateDataset() error {
	d := c.Dataset
	if d.Path == "" && d.URL == "" {
		return fmt.Errorf("one of DATASET_PATH or DATASET_URL is required")
	}
	if d.Path != "" && d.URL != "" {
		return fmt.Errorf("DATASET_PATH and DATASET_URL are mutually exclusive")
	}
	if d.URL != "" {
		if err := validateHTTPURL(d.URL, "DATASET_URL"); err != nil {
			return fmt.Errorf("DATASET_URL is invalid: %w", err)
		}
	}
	if !validDatasetFormats[d.Format] {
		return fmt.Errorf("DATASET_FORMAT must be one of: auto, csv, json")
	}
	if _, err := d.Location(); err != nil {
		return fmt.Errorf("DATASET_TIMEZONE is invalid: %w", err)
	}
	if d.FetchTimeout <= 0 {
		return fmt.Errorf("DATASET_FETCH_TIMEOUT must be positive")
	}
	if d.MaxBytes <= 0 {
		return fmt.Errorf("DATASET_MAX_BYTES must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory:
		return nil
	case BackendDuckDB:
		if c.Store.Threads < 0 {
			return fmt.Errorf("DUCKDB_THREADS must be non-negative")
		}
		if c.Store.MaxMemory == "" {
			return fmt.Errorf("DUCKDB_MAX_MEMORY is required for the duckdb backend")
		}
		return nil
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: memory, duckdb")
	}
}

func (c *Config) validateDashboard() error {
	d := c.Dashboard
	if d.CellSize <= 0 {
		return fmt.Errorf("dashboard.cell_size must be positive")
	}
	if d.CellGap < 0 {
		return fmt.Errorf("dashboard.cell_gap must be non-negative")
	}
	if d.HandleWidth <= 0 {
		return fmt.Errorf("dashboard.handle_width must be positive")
	}
	if d.HandleGrabWidth < d.HandleWidth {
		return fmt.Errorf("dashboard.handle_grab_width must be at least handle_width")
	}
	if d.ChartHeight <= 0 {
		return fmt.Errorf("dashboard.chart_height must be positive")
	}
	if d.MinChartWidth <= 0 {
		return fmt.Errorf("dashboard.min_chart_width must be positive")
	}
	if d.DefaultChartWidth < d.MinChartWidth {
		return fmt.Errorf("dashboard.default_chart_width must be at least min_chart_width")
	}
	if d.TopArtists < 1 || d.TopArtists > 50 {
		return fmt.Errorf("dashboard.top_artists must be between 1 and 50")
	}
	if d.TopTracks < 1 || d.TopTracks > 100 {
		return fmt.Errorf("dashboard.top_tracks must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be non-negative")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

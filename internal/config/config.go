// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Store     StoreConfig     `koanf:"store"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Cache     CacheConfig     `koanf:"cache"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig describes where the listening export comes from.
type DatasetConfig struct {
	// Path is a local file. Exactly one of Path and URL must be set.
	Path string `koanf:"path"`

	// URL is fetched once at startup.
	URL string `koanf:"url"`

	// Format is auto, csv or json. Auto picks from the file extension or
	// the response content type, falling back to sniffing the first byte.
	Format string `koanf:"format"`

	// Timezone is the IANA zone used for day and hour bucketing.
	// Empty or "Local" uses the process zone.
	Timezone string `koanf:"timezone"`

	// SnapshotPath is a Badger directory caching the parsed dataset keyed by
	// content hash. Empty disables the snapshot.
	SnapshotPath string `koanf:"snapshot_path"`

	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// MaxBytes caps the size of the export read from disk or network.
	MaxBytes int64 `koanf:"max_bytes"`
}

// Location resolves Timezone.
func (d DatasetConfig) Location() (*time.Location, error) {
	if d.Timezone == "" || d.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", d.Timezone, err)
	}
	return loc, nil
}

// Store backends.
const (
	BackendMemory = "memory"
	BackendDuckDB = "duckdb"
)

// StoreConfig selects the backend answering window queries.
type StoreConfig struct {
	// Backend is memory (default) or duckdb.
	Backend   string `koanf:"backend"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// DashboardConfig holds the geometry and limits of the rendered regions.
type DashboardConfig struct {
	CellSize        float64 `koanf:"cell_size"`
	CellGap         float64 `koanf:"cell_gap"`
	HandleWidth     float64 `koanf:"handle_width"`
	HandleGrabWidth float64 `koanf:"handle_grab_width"`

	// ChartHeight is the fixed pixel height of every bar/area chart.
	ChartHeight int `koanf:"chart_height"`

	// DefaultChartWidth is used until the browser reports container widths.
	DefaultChartWidth int `koanf:"default_chart_width"`

	// MinChartWidth is the narrowest container a chart will draw into.
	MinChartWidth int `koanf:"min_chart_width"`

	TopArtists int `koanf:"top_artists"`
	TopTracks  int `koanf:"top_tracks"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// CacheConfig controls the render cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`

	// MaxEntries bounds the number of cached renders. 0 is unbounded.
	MaxEntries int `koanf:"max_entries"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

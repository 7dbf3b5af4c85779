// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/tomtom215/soundtrail/internal/config"
	"github.com/tomtom215/soundtrail/internal/logging"
)

// ErrNoSource is returned when neither a path nor a URL is configured.
var ErrNoSource = errors.New("no dataset path or url configured")

// ErrUnknownFormat is returned for a format other than auto, csv or json.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Loader reads and parses the configured export.
type Loader struct {
	cfg      config.DatasetConfig
	loc      *time.Location
	client   *http.Client
	snapshot Snapshotter
}

// NewLoader creates a loader for cfg. snapshot may be nil.
func NewLoader(cfg config.DatasetConfig, loc *time.Location, snapshot Snapshotter) *Loader {
	if loc == nil {
		loc = time.Local
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Loader{
		cfg:      cfg,
		loc:      loc,
		client:   &http.Client{Timeout: timeout},
		snapshot: snapshot,
	}
}

// WithHTTPClient replaces the client used for URL sources.
func (l *Loader) WithHTTPClient(client *http.Client) *Loader {
	l.client = client
	return l
}

// Source returns the configured path or URL.
func (l *Loader) Source() string {
	if l.cfg.Path != "" {
		return l.cfg.Path
	}
	return l.cfg.URL
}

// Load reads, hashes and parses the export. Rows that fail validation are
// counted in the returned stats, never reported as errors.
func (l *Loader) Load(ctx context.Context) (*Dataset, *ImportStats, error) {
	stats := &ImportStats{Source: l.Source(), StartTime: time.Now()}
	log := logging.WithComponent("import")

	data, contentType, err := l.read(ctx)
	if err != nil {
		return nil, stats, err
	}
	stats.Bytes = int64(len(data))

	sum := sha256.Sum256(data)
	stats.ContentHash = hex.EncodeToString(sum[:])
	key := SnapshotKey(stats.ContentHash, l.loc.String())

	if l.snapshot != nil {
		ds, err := l.snapshot.Load(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("Snapshot unreadable, parsing export")
		} else if ds != nil {
			for i := range ds.Records {
				ds.Records[i].Timestamp = ds.Records[i].Timestamp.In(l.loc)
			}
			stats.FromSnapshot = true
			stats.Imported = int64(len(ds.Records))
			stats.EndTime = time.Now()
			return ds, stats, nil
		}
	}

	format, err := l.detectFormat(contentType, data)
	if err != nil {
		return nil, stats, err
	}
	stats.Format = format

	var ds *Dataset
	switch format {
	case FormatJSON:
		ds, err = ParseJSON(bytes.NewReader(data), l.loc, stats)
	default:
		ds, err = ParseCSV(bytes.NewReader(data), l.loc, stats)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("parse %s export: %w", format, err)
	}
	stats.EndTime = time.Now()

	if l.snapshot != nil {
		if err := l.snapshot.Save(ctx, key, ds); err != nil {
			log.Warn().Err(err).Msg("Failed to save dataset snapshot")
		}
	}
	return ds, stats, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, string, error) {
	switch {
	case l.cfg.Path != "":
		data, err := readFile(l.cfg.Path, l.cfg.MaxBytes)
		return data, "", err
	case l.cfg.URL != "":
		return fetchURL(ctx, l.client, l.cfg.URL, l.cfg.MaxBytes)
	default:
		return nil, "", ErrNoSource
	}
}

func (l *Loader) detectFormat(contentType string, data []byte) (string, error) {
	switch strings.ToLower(l.cfg.Format) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case "", FormatAuto:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, l.cfg.Format)
	}

	name := l.cfg.Path
	if name == "" {
		name = l.cfg.URL
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON, nil
	case strings.Contains(ct, "csv"):
		return FormatCSV, nil
	}
	return sniffFormat(data), nil
}

// sniffFormat treats content starting with '[' or '{' as JSON.
func sniffFormat(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatCSV
}

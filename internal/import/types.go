// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
)

// Supported export formats.
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Dataset is the result of parsing one export.
type Dataset struct {
	Records      []models.PlayRecord      `json:"records"`
	Availability models.FieldAvailability `json:"availability"`
}

// ImportStats holds statistics about one load.
type ImportStats struct {
	// Source is the file path or URL that was read.
	Source string `json:"source"`

	// Format is the format actually parsed (csv or json).
	Format string `json:"format"`

	// ContentHash is the hex sha256 of the raw export bytes.
	ContentHash string `json:"content_hash"`

	// Bytes is the size of the raw export.
	Bytes int64 `json:"bytes"`

	// Rows is the number of data rows read (header excluded).
	Rows int64 `json:"rows"`

	// Imported is the number of rows that became records.
	Imported int64 `json:"imported"`

	// SkippedTimestamp counts rows dropped for a missing or invalid timestamp.
	SkippedTimestamp int64 `json:"skipped_timestamp"`

	// SkippedDuration counts rows dropped for a negative or non-numeric ms_played.
	SkippedDuration int64 `json:"skipped_duration"`

	// FromSnapshot is set when the dataset came from the snapshot store.
	FromSnapshot bool `json:"from_snapshot"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Skipped returns the total number of dropped rows.
func (s *ImportStats) Skipped() int64 {
	return s.SkippedTimestamp + s.SkippedDuration
}

// Duration returns the duration of the load.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

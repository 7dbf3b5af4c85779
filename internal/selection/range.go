// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package selection

import (
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// FallbackLabel is the summary label when no explicit narrowing is active.
const FallbackLabel = "All dates in the selected period"

// RangeState is the active range. Start and End are local day floors with
// Start <= End. After every pipeline run Filtered holds exactly the window
// records whose day lies in [Start, End]; during a drag Start and End move
// ahead of Filtered until the commit.
type RangeState struct {
	Start    time.Time
	End      time.Time
	Filtered []models.PlayRecord

	// Narrowed is set once the range was chosen explicitly (apply or drag)
	// rather than defaulted to a year.
	Narrowed bool
}

// Valid reports whether the range is set and ordered.
func (r RangeState) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Label returns the filter-summary text for the range.
func (r RangeState) Label() string {
	if !r.Narrowed || !r.Valid() {
		return FallbackLabel
	}
	return RangeLabel(r.Start, r.End)
}

// RangeLabel formats a range as "Monday, Jan 01, 2024 → Tuesday, Jan 02, 2024".
func RangeLabel(start, end time.Time) string {
	return timeutil.FormatLongDate(start) + " → " + timeutil.FormatLongDate(end)
}

// Inputs mirrors the two date text inputs of the page.
type Inputs struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func inputsFor(start, end time.Time) Inputs {
	return Inputs{Start: timeutil.FormatDate(start), End: timeutil.FormatDate(end)}
}

// DateRange is a formatted inclusive date range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func dateRange(start, end time.Time) *DateRange {
	return &DateRange{Start: timeutil.FormatDate(start), End: timeutil.FormatDate(end)}
}

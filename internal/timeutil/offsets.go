// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package timeutil

import (
	"errors"
	"math"
	"time"
)

// ErrDegenerateOffset is returned when a pixel offset or column width cannot
// be mapped to a week column (NaN, infinite, or a non-positive width).
var ErrDegenerateOffset = errors.New("degenerate pixel offset")

// OffsetFromDate returns the horizontal pixel offset of the week column that
// contains d, relative to the week containing first.
func OffsetFromDate(first, d time.Time, columnWidth float64) float64 {
	return float64(WeeksBetween(first, d)) * columnWidth
}

// WeekIndexFromOffset maps a pixel offset to the nearest week column index:
// floor((x + columnWidth/2) / columnWidth). Offsets that sit exactly on a
// column edge map to that column.
func WeekIndexFromOffset(x, columnWidth float64) (int, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, ErrDegenerateOffset
	}
	if math.IsNaN(columnWidth) || math.IsInf(columnWidth, 0) || columnWidth <= 0 {
		return 0, ErrDegenerateOffset
	}
	idx := math.Floor((x + columnWidth/2) / columnWidth)
	if idx > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	if idx < math.MinInt32 {
		return math.MinInt32, nil
	}
	return int(idx), nil
}

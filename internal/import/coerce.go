// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Layouts carrying an explicit zone or offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700 MST",
}

// Layouts interpreted in the configured location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// unixMillisThreshold separates Unix seconds from Unix milliseconds. Values
// at or above it are milliseconds (any date after 1973 in ms).
const unixMillisThreshold = 100_000_000_000

type coercer struct {
	loc *time.Location
}

func newCoercer(loc *time.Location) *coercer {
	if loc == nil {
		loc = time.Local
	}
	return &coercer{loc: loc}
}

// timestamp parses a source timestamp into the configured location.
func (c *coercer) timestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(c.loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, true
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		if n >= unixMillisThreshold {
			return time.UnixMilli(n).In(c.loc), true
		}
		return time.Unix(n, 0).In(c.loc), true
	}
	return time.Time{}, false
}

// parseDuration parses ms_played. Decimals are truncated toward zero.
func parseDuration(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// parseBool accepts only "true" (any case) and "1".
func parseBool(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "1" || strings.EqualFold(s, "true")
}

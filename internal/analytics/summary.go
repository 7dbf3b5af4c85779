// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package analytics

import (
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// SummarizeDays condenses daily totals over the inclusive day range
// [start, end]. Days outside the range are ignored. A streak is a run of
// consecutive days with a positive total.
func SummarizeDays(days map[string]float64, start, end time.Time) models.CalendarSummary {
	var summary models.CalendarSummary
	if end.Before(start) {
		return summary
	}

	streak := 0
	for d := timeutil.DayFloor(start); !d.After(end); d = timeutil.AddDays(d, 1) {
		minutes := days[timeutil.DayKey(d)]
		if minutes <= 0 {
			streak = 0
			continue
		}
		summary.TotalMinutes += minutes
		summary.ActiveDays++
		if minutes > summary.MaxDayMinutes {
			summary.MaxDayMinutes = minutes
		}
		streak++
		if streak > summary.LongestStreak {
			summary.LongestStreak = streak
		}
	}
	return summary
}

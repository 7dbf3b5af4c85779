// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"fmt"
	"strings"

	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// MessageNoDays is shown when the coarse window produced no calendar days.
const MessageNoDays = "No days in the selected period"

// Calendar wraps a rendered heatmap and the summary of the active range.
// A heatmap without any listening keeps its grid and handles but is
// reported as no_data with the message above the grid.
func Calendar(h calendar.Heatmap, days int, summary models.CalendarSummary) Fragment {
	if days == 0 || h.SVG == "" {
		return Empty(RegionCalendar, StateNoData, MessageNoDays)
	}

	var sb strings.Builder
	state := StateReady
	message := ""
	if !h.Legend {
		state = StateNoData
		message = MessageNoData
		fmt.Fprintf(&sb, `<div class="empty-state empty-state-%s" data-region="%s">%s</div>`+"\n",
			state, RegionCalendar, esc(message))
	}
	sb.WriteString(h.SVG)
	sb.WriteString("\n")

	streak := "days"
	if summary.LongestStreak == 1 {
		streak = "day"
	}
	fmt.Fprintf(&sb, `<div class="calendar-summary"><span class="total">Total %s</span> <span class="active-days">%d active days</span> <span class="streak">Longest streak %d %s</span></div>`,
		esc(timeutil.FormatMinutes(summary.TotalMinutes)), summary.ActiveDays, summary.LongestStreak, streak)

	return Fragment{Region: RegionCalendar, State: state, Message: message, HTML: sb.String()}
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"fmt"
	"strings"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// TopArtists renders the ranked artist list.
func TopArtists(artists []models.ArtistTotal) Fragment {
	if len(artists) == 0 {
		return Empty(RegionTopArtists, StateNoData, MessageNoData)
	}

	var sb strings.Builder
	sb.WriteString(`<ol class="top-artists">` + "\n")
	for i, a := range artists {
		fmt.Fprintf(&sb, `  <li data-rank="%d"><span class="artist">%s</span> <span class="minutes" title="%s minutes">%s</span></li>`+"\n",
			i+1, esc(a.Artist), fmt.Sprintf("%.2f", a.Minutes), esc(timeutil.FormatMinutes(a.Minutes)))
	}
	sb.WriteString("</ol>")
	return Fragment{Region: RegionTopArtists, State: StateReady, HTML: sb.String()}
}

// TopTracks renders the top tracks as horizontal bars.
func TopTracks(result models.TopTracksResult, width int, layout Layout) Fragment {
	if !result.Available {
		return Empty(RegionTopTracks, StateUnavailable, result.Message)
	}
	if len(result.Tracks) == 0 {
		return Empty(RegionTopTracks, StateNoData, MessageNoData)
	}
	if width < layout.MinWidth {
		return Empty(RegionTopTracks, StateTooSmall, MessageTooSmall)
	}

	bars := make([]bar, len(result.Tracks))
	for i, t := range result.Tracks {
		bars[i] = bar{
			label:   t.Label(),
			tooltip: fmt.Sprintf("%s: %s", t.Label(), timeutil.FormatMinutes(t.Minutes)),
			value:   t.Minutes,
		}
	}
	return Fragment{
		Region: RegionTopTracks,
		State:  StateReady,
		HTML:   barChart("top-tracks", bars, width, layout.Height),
	}
}

// HourOfDay renders the 24 hourly buckets as columns.
func HourOfDay(buckets []models.HourBucket, width int, layout Layout) Fragment {
	total := 0.0
	for _, b := range buckets {
		total += b.Minutes
	}
	if len(buckets) == 0 || total <= 0 {
		return Empty(RegionHourOfDay, StateNoData, MessageNoData)
	}
	if width < layout.MinWidth {
		return Empty(RegionHourOfDay, StateTooSmall, MessageTooSmall)
	}

	bars := make([]bar, len(buckets))
	for i, b := range buckets {
		label := timeutil.FormatHour(b.Hour)
		bars[i] = bar{
			label:   label,
			tooltip: fmt.Sprintf("%s: %s", label, timeutil.FormatMinutes(b.Minutes)),
			value:   b.Minutes,
		}
	}
	return Fragment{
		Region: RegionHourOfDay,
		State:  StateReady,
		HTML:   columnChart("hour-of-day", bars, width, layout.Height, 3),
	}
}

// DayOfWeek renders the seven weekday buckets, Sunday first.
func DayOfWeek(buckets []models.WeekdayBucket, width int, layout Layout) Fragment {
	total := 0.0
	for _, b := range buckets {
		total += b.Minutes
	}
	if len(buckets) == 0 || total <= 0 {
		return Empty(RegionDayOfWeek, StateNoData, MessageNoData)
	}
	if width < layout.MinWidth {
		return Empty(RegionDayOfWeek, StateTooSmall, MessageTooSmall)
	}

	bars := make([]bar, len(buckets))
	for i, b := range buckets {
		bars[i] = bar{
			label:   timeutil.WeekdayShort(b.Weekday),
			tooltip: fmt.Sprintf("%s: %s", b.Name, timeutil.FormatMinutes(b.Minutes)),
			value:   b.Minutes,
		}
	}
	return Fragment{
		Region: RegionDayOfWeek,
		State:  StateReady,
		HTML:   columnChart("day-of-week", bars, width, layout.Height, 1),
	}
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/soundtrail/internal/analytics"
	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/models"
)

func sampleRecords() []models.PlayRecord {
	at := func(d, h, m int) time.Time { return time.Date(2024, 1, d, h, m, 0, 0, time.UTC) }
	return []models.PlayRecord{
		{Timestamp: at(1, 10, 0), Artist: "A", Track: "One", MsPlayed: 120000},
		{Timestamp: at(1, 10, 5), Artist: "B <&>", Track: "Two", MsPlayed: 60000},
		{Timestamp: at(2, 9, 0), Artist: "A", Track: "One", MsPlayed: 180000},
		{Timestamp: at(2, 9, 30), Artist: models.UnknownArtist, Track: models.NotAvailable, EpisodeName: "Ep", MsPlayed: 60000},
	}
}

var fullAvailability = models.FieldAvailability{models.FieldTrackName: true, models.FieldArtistName: true}

func TestEmptyStates(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()
	tests := []struct {
		name  string
		frag  Fragment
		state State
	}{
		{"artists nil", TopArtists(nil), StateNoData},
		{"tracks empty", TopTracks(models.TopTracksResult{Available: true}, 640, layout), StateNoData},
		{"tracks unavailable", TopTracks(analytics.TopTracks(sampleRecords(), models.FieldAvailability{}, 15), 640, layout), StateUnavailable},
		{"hours zero", HourOfDay(analytics.HourOfDay(nil), 640, layout), StateNoData},
		{"weekdays zero", DayOfWeek(analytics.DayOfWeek(nil), 640, layout), StateNoData},
		{"content empty", ContentShare(nil, 640, layout), StateNoData},
		{"hours too small", HourOfDay(analytics.HourOfDay(sampleRecords()), 100, layout), StateTooSmall},
		{"content too small", ContentShare(analytics.ContentShare(sampleRecords()), 100, layout), StateTooSmall},
		{"calendar no days", Calendar(calendar.Heatmap{}, 0, models.CalendarSummary{}), StateNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.frag.State != tt.state {
				t.Errorf("state = %s, want %s", tt.frag.State, tt.state)
			}
			if tt.frag.Message == "" {
				t.Error("empty state without a message")
			}
			if !strings.Contains(tt.frag.HTML, "empty-state-"+string(tt.state)) {
				t.Errorf("HTML %q lacks empty-state marker", tt.frag.HTML)
			}
		})
	}
}

func TestTopTracksUnavailableMessage(t *testing.T) {
	t.Parallel()

	frag := TopTracks(analytics.TopTracks(sampleRecords(), models.FieldAvailability{}, 15), 640, DefaultLayout())
	if frag.Message != analytics.TrackColumnMissingMessage {
		t.Errorf("message = %q, want %q", frag.Message, analytics.TrackColumnMissingMessage)
	}
}

func TestTopArtistsList(t *testing.T) {
	t.Parallel()

	frag := TopArtists(analytics.TopArtists(sampleRecords(), 5))
	if !frag.Ready() {
		t.Fatalf("state = %s", frag.State)
	}
	if strings.Count(frag.HTML, "<li") != 2 {
		t.Errorf("list items = %d, want 2", strings.Count(frag.HTML, "<li"))
	}
	if !strings.Contains(frag.HTML, "B &lt;&amp;&gt;") {
		t.Error("artist name not escaped")
	}
	if strings.Index(frag.HTML, ">A<") > strings.Index(frag.HTML, "B &lt;") {
		t.Error("A should rank before B")
	}
}

func TestColumnCharts(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()
	hours := HourOfDay(analytics.HourOfDay(sampleRecords()), 720, layout)
	if !hours.Ready() {
		t.Fatalf("hour state = %s", hours.State)
	}
	if got := strings.Count(hours.HTML, `class="bar"`); got != 24 {
		t.Errorf("hour bars = %d, want 24", got)
	}
	if !strings.Contains(hours.HTML, `width="720"`) || !strings.Contains(hours.HTML, `height="260"`) {
		t.Error("chart not sized to the region width and fixed height")
	}
	if !strings.Contains(hours.HTML, "<title>10 AM: 3.0 min</title>") {
		t.Error("missing exact-value tooltip for 10 AM")
	}
	if !strings.Contains(hours.HTML, `attributeName="height" from="0"`) {
		t.Error("bars do not animate from zero")
	}

	days := DayOfWeek(analytics.DayOfWeek(sampleRecords()), 400, layout)
	if got := strings.Count(days.HTML, `class="bar"`); got != 7 {
		t.Errorf("weekday bars = %d, want 7", got)
	}
	if !strings.Contains(days.HTML, "<title>Monday: 3.0 min</title>") {
		t.Error("missing Monday tooltip")
	}
}

func TestTopTracksChart(t *testing.T) {
	t.Parallel()

	frag := TopTracks(analytics.TopTracks(sampleRecords(), fullAvailability, 15), 640, DefaultLayout())
	if !frag.Ready() {
		t.Fatalf("state = %s", frag.State)
	}
	if got := strings.Count(frag.HTML, `class="bar"`); got != 2 {
		t.Errorf("bars = %d, want 2", got)
	}
	if !strings.Contains(frag.HTML, "<title>One - A: 5.0 min</title>") {
		t.Error("missing track tooltip")
	}
	if !strings.Contains(frag.HTML, `attributeName="width" from="0"`) {
		t.Error("bars do not animate from zero")
	}
}

func TestContentShare(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()
	frag := ContentShare(analytics.ContentShare(sampleRecords()), 640, layout)
	if !frag.Ready() {
		t.Fatalf("state = %s", frag.State)
	}
	if !strings.Contains(frag.HTML, `class="area-music"`) || !strings.Contains(frag.HTML, `class="area-podcast"`) {
		t.Error("missing stacked areas")
	}
	if got := strings.Count(frag.HTML, `class="hover-column"`); got != 2 {
		t.Errorf("hover columns = %d, want 2", got)
	}
	if !strings.Contains(frag.HTML, "Podcast 1.0 min (25.0%)") {
		t.Error("missing podcast share tooltip")
	}

	single := ContentShare(analytics.ContentShare(sampleRecords()[:1]), 640, layout)
	if !single.Ready() || strings.Count(single.HTML, `class="hover-column"`) != 1 {
		t.Errorf("single bucket render = %s", single.State)
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()
	records := sampleRecords()
	render := func() []Fragment {
		return []Fragment{
			TopArtists(analytics.TopArtists(records, 5)),
			TopTracks(analytics.TopTracks(records, fullAvailability, 15), 500, layout),
			HourOfDay(analytics.HourOfDay(records), 500, layout),
			DayOfWeek(analytics.DayOfWeek(records), 500, layout),
			ContentShare(analytics.ContentShare(records), 500, layout),
		}
	}
	first, second := render(), render()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("fragment %s differs between identical renders", first[i].Region)
		}
	}
}

func TestCalendarFragment(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	grid, err := calendar.NewGrid(start, end, 12, 2)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	daily := analytics.DailyMinutes(sampleRecords())
	maxDaily := analytics.MaxDailyMinutes(daily)
	h := calendar.RenderHeatmap(grid, daily, maxDaily, start, end, calendar.DefaultOptions())

	frag := Calendar(h, grid.Len(), models.CalendarSummary{TotalMinutes: 7, ActiveDays: 2, LongestStreak: 2})
	if !frag.Ready() {
		t.Fatalf("state = %s", frag.State)
	}
	if !strings.Contains(frag.HTML, "2 active days") || !strings.Contains(frag.HTML, "Longest streak 2 days") {
		t.Errorf("summary missing from %q", frag.HTML[len(frag.HTML)-200:])
	}

	quiet := calendar.RenderHeatmap(grid, nil, 0, start, end, calendar.DefaultOptions())
	frag = Calendar(quiet, grid.Len(), models.CalendarSummary{})
	if frag.State != StateNoData || !strings.Contains(frag.HTML, "<svg") {
		t.Errorf("quiet calendar state = %s, want no_data with grid", frag.State)
	}
}

func TestLayout(t *testing.T) {
	t.Parallel()

	l := DefaultLayout()
	widths := Widths{RegionTopTracks: 900, RegionHourOfDay: 0}
	if got := l.For(widths, RegionTopTracks); got != 900 {
		t.Errorf("reported width = %d, want 900", got)
	}
	if got := l.For(widths, RegionHourOfDay); got != l.DefaultWidth {
		t.Errorf("zero width = %d, want default %d", got, l.DefaultWidth)
	}
	if got := l.For(nil, RegionDayOfWeek); got != l.DefaultWidth {
		t.Errorf("missing width = %d, want default", got)
	}
	if !RegionCalendar.Valid() || Region("nope").Valid() {
		t.Error("Region.Valid mismatch")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("abcdef", 10); got != "abcdef" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "hé..." {
		t.Errorf("truncate runes = %q", got)
	}
}

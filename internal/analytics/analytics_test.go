// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
)

func rec(ts string, artist, track string, ms int64) models.PlayRecord {
	t, err := time.ParseInLocation("2006-01-02T15:04", ts, time.UTC)
	if err != nil {
		panic(err)
	}
	return models.PlayRecord{Timestamp: t, Artist: artist, Track: track, Album: models.NotAvailable, MsPlayed: ms}
}

func allFields() models.FieldAvailability {
	avail := models.FieldAvailability{}
	for _, f := range models.LogicalFields {
		avail[f] = true
	}
	return avail
}

func TestTopArtists(t *testing.T) {
	t.Parallel()

	records := []models.PlayRecord{
		rec("2024-01-01T10:00", "A", "a1", 120000),
		rec("2024-01-01T10:05", "B", "b1", 60000),
		rec("2024-01-02T09:00", "A", "a2", 180000),
		rec("2024-01-02T09:10", models.UnknownArtist, "x", 999999),
		rec("2024-01-02T09:20", "C", "c1", 0),
	}

	got := TopArtists(records, 5)
	want := []models.ArtistTotal{{Artist: "A", Minutes: 5}, {Artist: "B", Minutes: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopArtists = %+v, want %+v", got, want)
	}
}

func TestTopArtistsStableTies(t *testing.T) {
	t.Parallel()

	var records []models.PlayRecord
	for _, a := range []string{"Zed", "Amy", "Mo", "Bea", "Cy", "Di", "Ed"} {
		records = append(records, rec("2024-01-01T10:00", a, "t", 60000))
	}

	got := TopArtists(records, 5)
	names := make([]string, len(got))
	for i, g := range got {
		names[i] = g.Artist
	}
	want := []string{"Zed", "Amy", "Mo", "Bea", "Cy"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("tie order = %v, want insertion order %v", names, want)
	}
}

func TestTopArtistsEmpty(t *testing.T) {
	t.Parallel()

	got := TopArtists(nil, 0)
	if got == nil || len(got) != 0 {
		t.Errorf("TopArtists(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestTopTracks(t *testing.T) {
	t.Parallel()

	records := []models.PlayRecord{
		rec("2024-01-01T10:00", "A", "Song", 60000),
		rec("2024-01-01T10:05", "B", "Song", 120000),
		rec("2024-01-01T10:10", "A", "Song", 90000),
		rec("2024-01-01T10:15", "A", models.NotAvailable, 500000),
	}

	res := TopTracks(records, allFields(), 15)
	if !res.Available {
		t.Fatal("expected tracks to be available")
	}
	want := []models.TrackTotal{
		{Track: "Song", Artist: "A", Minutes: 2.5},
		{Track: "Song", Artist: "B", Minutes: 2},
	}
	if !reflect.DeepEqual(res.Tracks, want) {
		t.Errorf("TopTracks = %+v, want %+v", res.Tracks, want)
	}
}

func TestTopTracksLimit(t *testing.T) {
	t.Parallel()

	var records []models.PlayRecord
	for i := 0; i < 20; i++ {
		records = append(records, rec("2024-01-01T10:00", "A", string(rune('a'+i)), int64(60000*(i+1))))
	}
	res := TopTracks(records, allFields(), 0)
	if len(res.Tracks) != DefaultTopTracks {
		t.Fatalf("len = %d, want %d", len(res.Tracks), DefaultTopTracks)
	}
	if res.Tracks[0].Track != "t" {
		t.Errorf("largest track = %q, want %q", res.Tracks[0].Track, "t")
	}
}

func TestTopTracksColumnMissing(t *testing.T) {
	t.Parallel()

	avail := allFields()
	avail[models.FieldTrackName] = false

	res := TopTracks([]models.PlayRecord{rec("2024-01-01T10:00", "A", "Song", 60000)}, avail, 15)
	if res.Available {
		t.Error("expected unavailable result")
	}
	if res.Message != TrackColumnMissingMessage {
		t.Errorf("Message = %q", res.Message)
	}
	if len(res.Tracks) != 0 {
		t.Errorf("Tracks = %v, want empty", res.Tracks)
	}
}

func TestZeroFilledBuckets(t *testing.T) {
	t.Parallel()

	inputs := map[string][]models.PlayRecord{
		"nil":   nil,
		"empty": {},
		"one":   {rec("2024-01-01T10:00", "A", "a", 60000)},
		"zeros": {rec("2024-01-01T10:00", "A", "a", 0)},
	}
	for name, records := range inputs {
		t.Run(name, func(t *testing.T) {
			hours := HourOfDay(records)
			if len(hours) != 24 {
				t.Fatalf("HourOfDay len = %d, want 24", len(hours))
			}
			for i, h := range hours {
				if h.Hour != i {
					t.Errorf("bucket %d has hour %d", i, h.Hour)
				}
			}
			days := DayOfWeek(records)
			if len(days) != 7 {
				t.Fatalf("DayOfWeek len = %d, want 7", len(days))
			}
			if days[0].Name != "Sunday" || days[6].Name != "Saturday" {
				t.Errorf("weekday names = %q..%q", days[0].Name, days[6].Name)
			}
		})
	}
}

func TestHourAndWeekdayTotals(t *testing.T) {
	t.Parallel()

	records := []models.PlayRecord{
		rec("2024-01-01T10:00", "A", "a", 120000),
		rec("2024-01-01T10:05", "B", "b", 60000),
		rec("2024-01-02T09:00", "A", "a", 180000),
	}

	hours := HourOfDay(records)
	if hours[10].Minutes != 3 || hours[9].Minutes != 3 {
		t.Errorf("hour totals 9=%v 10=%v, want 3 and 3", hours[9].Minutes, hours[10].Minutes)
	}

	days := DayOfWeek(records[:2])
	for i, d := range days {
		want := 0.0
		if i == int(time.Monday) {
			want = 3
		}
		if d.Minutes != want {
			t.Errorf("weekday %d = %v, want %v", i, d.Minutes, want)
		}
	}
}

func TestContentShare(t *testing.T) {
	t.Parallel()

	podcast := rec("2024-01-01T10:30", "", models.NotAvailable, 120000)
	podcast.EpisodeName = "Episode 1"
	records := []models.PlayRecord{
		rec("2024-01-01T11:10", "A", "a", 60000),
		rec("2024-01-01T10:05", "A", "a", 60000),
		podcast,
		rec("2024-01-01T12:00", "A", "a", 0),
	}

	got := ContentShare(records)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (zero-total hour dropped): %+v", len(got), got)
	}
	if got[0].Hour.Hour() != 10 || got[1].Hour.Hour() != 11 {
		t.Errorf("buckets not chronological: %v, %v", got[0].Hour, got[1].Hour)
	}
	if got[0].Music != 1 || got[0].Podcast != 2 {
		t.Errorf("10:00 bucket = %+v", got[0])
	}
	if got[1].Music != 1 || got[1].Podcast != 0 {
		t.Errorf("11:00 bucket = %+v", got[1])
	}
	if empty := ContentShare(nil); empty == nil || len(empty) != 0 {
		t.Errorf("ContentShare(nil) = %#v, want empty non-nil slice", empty)
	}
}

func TestDailyMinutesAndSummary(t *testing.T) {
	t.Parallel()

	records := []models.PlayRecord{
		rec("2024-01-01T23:59", "A", "a", 60000),
		rec("2024-01-02T00:00", "A", "a", 120000),
		rec("2024-01-03T12:00", "A", "a", 180000),
		rec("2024-01-05T12:00", "A", "a", 60000),
		rec("2024-01-06T12:00", "A", "a", 0),
	}

	days := DailyMinutes(records)
	if days["2024-01-01"] != 1 || days["2024-01-02"] != 2 {
		t.Errorf("midnight split wrong: %v", days)
	}
	if _, ok := days["2024-01-06"]; ok {
		t.Error("zero-duration day should not be present")
	}
	if got := MaxDailyMinutes(days); got != 3 {
		t.Errorf("MaxDailyMinutes = %v, want 3", got)
	}
	if got := MaxDailyMinutes(nil); got != 0 {
		t.Errorf("MaxDailyMinutes(nil) = %v, want 0", got)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	s := SummarizeDays(days, start, end)
	want := models.CalendarSummary{TotalMinutes: 7, MaxDayMinutes: 3, ActiveDays: 4, LongestStreak: 3}
	if s != want {
		t.Errorf("SummarizeDays = %+v, want %+v", s, want)
	}
	if s := SummarizeDays(days, end, start); s != (models.CalendarSummary{}) {
		t.Errorf("inverted range summary = %+v, want zero", s)
	}
}

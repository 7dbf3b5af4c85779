// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

// Package analytics implements the per-chart aggregations of the dashboard.
//
// Every function is pure: it reads a record collection and returns a freshly
// allocated summary. Records with MsPlayed == 0 are never counted. Top-N
// results break ties by first appearance in the input (stable sort), so the
// same input always yields the same order.
package analytics

import (
	"sort"
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// Default list lengths for the top-N charts.
const (
	DefaultTopArtists = 5
	DefaultTopTracks  = 15
)

// TrackColumnMissingMessage is reported by TopTracks when the source export
// had no track name column.
const TrackColumnMissingMessage = "Track names are not available in this export"

// TopArtists sums minutes per artist, excluding the unknown-artist sentinel,
// and returns the limit largest totals in descending order.
func TopArtists(records []models.PlayRecord, limit int) []models.ArtistTotal {
	if limit <= 0 {
		limit = DefaultTopArtists
	}

	index := make(map[string]int)
	totals := []models.ArtistTotal{}
	for i := range records {
		r := &records[i]
		if r.MsPlayed <= 0 || r.Artist == "" || r.Artist == models.UnknownArtist {
			continue
		}
		pos, ok := index[r.Artist]
		if !ok {
			pos = len(totals)
			index[r.Artist] = pos
			totals = append(totals, models.ArtistTotal{Artist: r.Artist})
		}
		totals[pos].Minutes += r.Minutes()
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Minutes > totals[j].Minutes
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

type trackKey struct {
	track  string
	artist string
}

// TopTracks sums minutes per (track, artist) pair and returns the limit
// largest totals. When the track column was absent from the source the
// result is marked unavailable and carries a message instead of data.
func TopTracks(records []models.PlayRecord, availability models.FieldAvailability, limit int) models.TopTracksResult {
	if !availability.Has(models.FieldTrackName) {
		return models.TopTracksResult{
			Available: false,
			Message:   TrackColumnMissingMessage,
			Tracks:    []models.TrackTotal{},
		}
	}
	if limit <= 0 {
		limit = DefaultTopTracks
	}

	index := make(map[trackKey]int)
	totals := []models.TrackTotal{}
	for i := range records {
		r := &records[i]
		if r.MsPlayed <= 0 || r.Track == "" || r.Track == models.NotAvailable {
			continue
		}
		key := trackKey{track: r.Track, artist: r.Artist}
		pos, ok := index[key]
		if !ok {
			pos = len(totals)
			index[key] = pos
			totals = append(totals, models.TrackTotal{Track: r.Track, Artist: r.Artist})
		}
		totals[pos].Minutes += r.Minutes()
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Minutes > totals[j].Minutes
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return models.TopTracksResult{Available: true, Tracks: totals}
}

// HourOfDay returns exactly 24 buckets of minutes keyed by local hour.
func HourOfDay(records []models.PlayRecord) []models.HourBucket {
	buckets := make([]models.HourBucket, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for i := range records {
		r := &records[i]
		if r.MsPlayed <= 0 {
			continue
		}
		buckets[r.Timestamp.Hour()].Minutes += r.Minutes()
	}
	return buckets
}

// DayOfWeek returns exactly 7 buckets of minutes keyed by weekday,
// 0=Sunday through 6=Saturday.
func DayOfWeek(records []models.PlayRecord) []models.WeekdayBucket {
	buckets := make([]models.WeekdayBucket, 7)
	for d := range buckets {
		buckets[d].Weekday = d
		buckets[d].Name = timeutil.WeekdayName(d)
	}
	for i := range records {
		r := &records[i]
		if r.MsPlayed <= 0 {
			continue
		}
		buckets[int(r.Timestamp.Weekday())].Minutes += r.Minutes()
	}
	return buckets
}

// ContentShare buckets records by the floor of their local hour and sums
// minutes per content type. A record is a podcast when it carries an
// episode name. Buckets whose total is zero are dropped; the rest are
// returned in chronological order.
func ContentShare(records []models.PlayRecord) []models.ContentShareBucket {
	index := make(map[int64]int)
	var buckets []models.ContentShareBucket
	for i := range records {
		r := &records[i]
		if r.MsPlayed <= 0 {
			continue
		}
		hour := hourFloor(r.Timestamp)
		key := hour.Unix()
		pos, ok := index[key]
		if !ok {
			pos = len(buckets)
			index[key] = pos
			buckets = append(buckets, models.ContentShareBucket{Hour: hour})
		}
		if r.IsPodcast() {
			buckets[pos].Podcast += r.Minutes()
		} else {
			buckets[pos].Music += r.Minutes()
		}
	}

	out := make([]models.ContentShareBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Total() > 0 {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hour.Before(out[j].Hour)
	})
	return out
}

func hourFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// DailyMinutes sums minutes per local day, keyed by timeutil.DayKey.
func DailyMinutes(records []models.PlayRecord) map[string]float64 {
	days := make(map[string]float64)
	for i := range records {
		r := &records[i]
		if r.MsPlayed <= 0 {
			continue
		}
		days[timeutil.DayKey(r.Timestamp)] += r.Minutes()
	}
	return days
}

// MaxDailyMinutes returns the largest value in a DailyMinutes map, or 0.
func MaxDailyMinutes(days map[string]float64) float64 {
	var maxMinutes float64
	for _, m := range days {
		if m > maxMinutes {
			maxMinutes = m
		}
	}
	return maxMinutes
}

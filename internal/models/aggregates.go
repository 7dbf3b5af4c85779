// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package models

import "time"

// ArtistTotal is one row of the top artists list.
type ArtistTotal struct {
	Artist  string  `json:"artist"`
	Minutes float64 `json:"minutes"`
}

// TrackTotal is one bar of the top tracks chart.
type TrackTotal struct {
	Track   string  `json:"track"`
	Artist  string  `json:"artist"`
	Minutes float64 `json:"minutes"`
}

// Label returns the display label for the track bar.
func (t TrackTotal) Label() string {
	return t.Track + " - " + t.Artist
}

// TopTracksResult carries the top tracks or, when the source had no track
// column, a message explaining why nothing was computed.
type TopTracksResult struct {
	Available bool         `json:"available"`
	Message   string       `json:"message,omitempty"`
	Tracks    []TrackTotal `json:"tracks"`
}

// HourBucket is the total minutes played in one local hour of the day (0-23).
type HourBucket struct {
	Hour    int     `json:"hour"`
	Minutes float64 `json:"minutes"`
}

// WeekdayBucket is the total minutes played on one weekday (0=Sunday).
type WeekdayBucket struct {
	Weekday int     `json:"weekday"`
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
}

// ContentShareBucket holds minutes per content type for one hour bucket.
// Buckets with a zero total are never emitted.
type ContentShareBucket struct {
	Hour    time.Time `json:"hour"`
	Music   float64   `json:"music"`
	Podcast float64   `json:"podcast"`
}

// Total returns the combined minutes of the bucket.
func (b ContentShareBucket) Total() float64 {
	return b.Music + b.Podcast
}

// PodcastShare returns the podcast fraction of the bucket in [0, 1].
func (b ContentShareBucket) PodcastShare() float64 {
	total := b.Total()
	if total == 0 {
		return 0
	}
	return b.Podcast / total
}

// CalendarDay is the total listening time of a single local day.
type CalendarDay struct {
	Date    time.Time `json:"date"`
	Minutes float64   `json:"minutes"`
	Plays   int       `json:"plays"`
}

// CalendarSummary condenses the daily totals of a coarse window.
type CalendarSummary struct {
	TotalMinutes  float64 `json:"total_minutes"`
	MaxDayMinutes float64 `json:"max_day_minutes"`
	ActiveDays    int     `json:"active_days"`
	LongestStreak int     `json:"longest_streak"`
}

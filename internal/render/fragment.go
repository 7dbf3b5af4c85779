// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"fmt"
	"html"
)

// Region names a dashboard container.
type Region string

// Dashboard regions, in page order.
const (
	RegionCalendar     Region = "calendar"
	RegionTopArtists   Region = "top_artists"
	RegionTopTracks    Region = "top_tracks"
	RegionHourOfDay    Region = "hour_of_day"
	RegionDayOfWeek    Region = "day_of_week"
	RegionContentShare Region = "content_share"
)

// Regions lists every region in page order.
var Regions = []Region{
	RegionCalendar,
	RegionTopArtists,
	RegionTopTracks,
	RegionHourOfDay,
	RegionDayOfWeek,
	RegionContentShare,
}

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// State is the render state of a region.
type State string

const (
	StateReady       State = "ready"
	StateNoData      State = "no_data"
	StateUnavailable State = "unavailable"
	StateTooSmall    State = "too_small"
	StateError       State = "error"
	StateLoading     State = "loading"
)

// Empty-state messages.
const (
	MessageNoData   = "No listening data for the selected range"
	MessageTooSmall = "Not enough room to draw this chart"
	MessageLoading  = "Loading listening history..."
)

// Fragment is the complete content of one region.
type Fragment struct {
	Region  Region `json:"region"`
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
	HTML    string `json:"html"`
}

// Ready reports whether the fragment holds a drawn chart.
func (f Fragment) Ready() bool { return f.State == StateReady }

// Empty builds a fragment in a non-ready state showing message.
func Empty(region Region, state State, message string) Fragment {
	return Fragment{
		Region:  region,
		State:   state,
		Message: message,
		HTML: fmt.Sprintf(`<div class="empty-state empty-state-%s" data-region="%s">%s</div>`,
			state, region, html.EscapeString(message)),
	}
}

// Loading returns the placeholder shown before the dataset resolves.
func Loading(region Region) Fragment {
	return Empty(region, StateLoading, MessageLoading)
}

// Failed returns the error fragment shown when the dataset failed to load.
func Failed(region Region, message string) Fragment {
	return Empty(region, StateError, message)
}

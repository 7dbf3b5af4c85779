// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package models

import "time"

// Sentinel values substituted for absent or empty source fields.
const (
	UnknownArtist = "Unknown Artist"
	NotAvailable  = "N/A"
)

// Content type labels used by the content share chart.
const (
	ContentMusic   = "Music"
	ContentPodcast = "Podcast"
)

// Logical field names reported by FieldAvailability.
const (
	FieldTimestamp        = "timestamp"
	FieldMsPlayed         = "ms_played"
	FieldPlatform         = "platform"
	FieldCountry          = "country"
	FieldArtistName       = "artist_name"
	FieldTrackName        = "track_name"
	FieldAlbumName        = "album_name"
	FieldEpisodeName      = "episode_name"
	FieldEpisodeShowName  = "episode_show_name"
	FieldAudiobookTitle   = "audiobook_title"
	FieldAudiobookChapter = "audiobook_chapter_title"
	FieldReasonStart      = "reason_start"
	FieldReasonEnd        = "reason_end"
	FieldSkipped          = "skipped"
	FieldShuffle          = "shuffle"
)

// LogicalFields lists every logical field in source-export order.
var LogicalFields = []string{
	FieldTimestamp,
	FieldPlatform,
	FieldMsPlayed,
	FieldCountry,
	FieldTrackName,
	FieldArtistName,
	FieldAlbumName,
	FieldEpisodeName,
	FieldEpisodeShowName,
	FieldAudiobookTitle,
	FieldAudiobookChapter,
	FieldReasonStart,
	FieldReasonEnd,
	FieldShuffle,
	FieldSkipped,
}

// PlayRecord is a single play event that passed load-time validation.
//
// Timestamp is always valid and MsPlayed is never negative; rows violating
// either are dropped by the loader. String fields never hold an empty value
// for artist/track/album (sentinels are substituted instead) so that grouping
// keys stay well defined. Episode and audiobook fields stay empty when absent.
type PlayRecord struct {
	Timestamp        time.Time `json:"ts"`
	MsPlayed         int64     `json:"ms_played"`
	Platform         string    `json:"platform"`
	Country          string    `json:"country"`
	Artist           string    `json:"artist"`
	Track            string    `json:"track"`
	Album            string    `json:"album"`
	EpisodeName      string    `json:"episode_name,omitempty"`
	EpisodeShow      string    `json:"episode_show,omitempty"`
	AudiobookTitle   string    `json:"audiobook_title,omitempty"`
	AudiobookChapter string    `json:"audiobook_chapter,omitempty"`
	ReasonStart      string    `json:"reason_start"`
	ReasonEnd        string    `json:"reason_end"`
	Skipped          bool      `json:"skipped"`
	Shuffle          bool      `json:"shuffle"`
}

// Minutes returns the played duration in minutes.
func (r PlayRecord) Minutes() float64 {
	return float64(r.MsPlayed) / 60000.0
}

// IsPodcast reports whether the record is a podcast episode.
func (r PlayRecord) IsPodcast() bool {
	return r.EpisodeName != ""
}

// FieldAvailability maps a logical field name to whether the source
// carried that column. Read-only after load.
type FieldAvailability map[string]bool

// Has reports whether the named logical field was present in the source.
// Unknown names report false.
func (f FieldAvailability) Has(field string) bool {
	if f == nil {
		return false
	}
	return f[field]
}

// Missing returns the logical fields that were absent from the source, in
// LogicalFields order.
func (f FieldAvailability) Missing() []string {
	var missing []string
	for _, name := range LogicalFields {
		if !f.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

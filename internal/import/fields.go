// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"strings"

	"github.com/tomtom215/soundtrail/internal/models"
)

// headerAliases maps normalized source column names to logical fields.
var headerAliases = map[string]string{
	"ts":           models.FieldTimestamp,
	"timestamp":    models.FieldTimestamp,
	"endtime":      models.FieldTimestamp,
	"end_time":     models.FieldTimestamp,
	"played_at":    models.FieldTimestamp,
	"ms_played":    models.FieldMsPlayed,
	"msplayed":     models.FieldMsPlayed,
	"ms played":    models.FieldMsPlayed,
	"platform":     models.FieldPlatform,
	"conn_country": models.FieldCountry,
	"country":      models.FieldCountry,

	"master_metadata_track_name":        models.FieldTrackName,
	"track_name":                        models.FieldTrackName,
	"trackname":                         models.FieldTrackName,
	"track":                             models.FieldTrackName,
	"master_metadata_album_artist_name": models.FieldArtistName,
	"artist_name":                       models.FieldArtistName,
	"artistname":                        models.FieldArtistName,
	"artist":                            models.FieldArtistName,
	"master_metadata_album_album_name":  models.FieldAlbumName,
	"album_name":                        models.FieldAlbumName,
	"album":                             models.FieldAlbumName,

	"episode_name":            models.FieldEpisodeName,
	"episode_show_name":       models.FieldEpisodeShowName,
	"audiobook_title":         models.FieldAudiobookTitle,
	"audiobook_chapter_title": models.FieldAudiobookChapter,
	"reason_start":            models.FieldReasonStart,
	"reason_end":              models.FieldReasonEnd,
	"shuffle":                 models.FieldShuffle,
	"skipped":                 models.FieldSkipped,
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// logicalField returns the logical field for a source column name. The
// first alias that maps to a field wins when a source carries duplicates.
func logicalField(header string) (string, bool) {
	field, ok := headerAliases[normalize(header)]
	return field, ok
}

// row is one source row keyed by logical field.
type row map[string]string

// rowBuilder turns logical rows into records, keeping the load statistics.
type rowBuilder struct {
	coercer *coercer
	stats   *ImportStats
	records []models.PlayRecord
}

func (b *rowBuilder) add(r row) {
	b.stats.Rows++

	ts, ok := b.coercer.timestamp(r[models.FieldTimestamp])
	if !ok {
		b.stats.SkippedTimestamp++
		return
	}
	ms, ok := parseDuration(r[models.FieldMsPlayed])
	if !ok {
		b.stats.SkippedDuration++
		return
	}

	b.records = append(b.records, models.PlayRecord{
		Timestamp:        ts,
		MsPlayed:         ms,
		Platform:         orSentinel(r[models.FieldPlatform], models.NotAvailable),
		Country:          orSentinel(r[models.FieldCountry], models.NotAvailable),
		Artist:           orSentinel(r[models.FieldArtistName], models.UnknownArtist),
		Track:            orSentinel(r[models.FieldTrackName], models.NotAvailable),
		Album:            orSentinel(r[models.FieldAlbumName], models.NotAvailable),
		EpisodeName:      strings.TrimSpace(r[models.FieldEpisodeName]),
		EpisodeShow:      strings.TrimSpace(r[models.FieldEpisodeShowName]),
		AudiobookTitle:   strings.TrimSpace(r[models.FieldAudiobookTitle]),
		AudiobookChapter: strings.TrimSpace(r[models.FieldAudiobookChapter]),
		ReasonStart:      orSentinel(r[models.FieldReasonStart], models.NotAvailable),
		ReasonEnd:        orSentinel(r[models.FieldReasonEnd], models.NotAvailable),
		Skipped:          parseBool(r[models.FieldSkipped]),
		Shuffle:          parseBool(r[models.FieldShuffle]),
	})
	b.stats.Imported++
}

func (b *rowBuilder) dataset(availability models.FieldAvailability) *Dataset {
	records := b.records
	if records == nil {
		records = make([]models.PlayRecord, 0)
	}
	return &Dataset{Records: records, Availability: availability}
}

func orSentinel(s, sentinel string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return sentinel
	}
	return s
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package models defines the data structures shared across Soundtrail.

Play data:
  - PlayRecord: one validated play event from the listening export
  - FieldAvailability: which optional source columns were present

Aggregations (one per dashboard chart):
  - ArtistTotal, TrackTotal, TopTracksResult
  - HourBucket, WeekdayBucket
  - ContentShareBucket

API envelope:
  - APIResponse, Metadata, APIError

All play-data types are immutable after load. Aggregation results are
recomputed wholesale on every committed range and never patched in place.
*/
package models

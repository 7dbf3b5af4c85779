// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package playimport loads a streaming-history export into play records.

Two formats are understood:

  - CSV with a header row. Column names are matched case-insensitively
    against a table of aliases (Spotify extended history names such as
    "ts", "master_metadata_track_name" and "conn_country", plus the short
    names used by hand-made exports).
  - JSON: an array of objects using the same keys (Spotify's
    Streaming_History_Audio_*.json files).

Every row goes through the same coercion:

  - timestamp: RFC3339, "YYYY-MM-DD HH:MM[:SS]", a bare date, or Unix
    seconds/milliseconds. Rows without a parseable timestamp are dropped.
  - ms_played: integer, or a decimal truncated toward zero. Negative or
    non-numeric values drop the row.
  - skipped/shuffle: true only for "true" (any case), "1" or JSON true.
  - absent or empty artist becomes "Unknown Artist"; track, album,
    platform, country and reasons become "N/A"; episode and audiobook
    fields stay empty.

The Loader reads the export from a file or an http(s) URL, hashes the raw
bytes, and consults an optional Snapshotter (Badger) so that a restart with
an unchanged export skips parsing.
*/
package playimport

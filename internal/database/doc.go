// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package database mirrors the loaded play records into DuckDB and answers
window queries from it.

The mirror is optional (store.backend=duckdb). The in-memory store stays
the source of truth; DuckDB only serves the coarse-window query, which
returns the same records in the same order:

	SELECT ... FROM plays WHERE day BETWEEN ? AND ? ORDER BY seq

Each row carries its position in the source (seq), its local calendar day
as a day number (day) and its timestamp as Unix nanoseconds (ts_ns).
Timestamps are rebuilt in the configured location on read, so day and hour
bucketing of mirrored records matches the in-memory records exactly.

Connection settings follow the usual DuckDB tuning parameters:

	<path>?access_mode=read_write&threads=N&max_memory=1GB
*/
package database

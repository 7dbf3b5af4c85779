// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

const insertPlay = `INSERT INTO plays (
	seq, day, ts_ns, ms_played,
	platform, country, artist, track, album,
	episode_name, episode_show, audiobook_title, audiobook_chapter,
	reason_start, reason_end, skipped, shuffle
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectWindow = `SELECT
	ts_ns, ms_played,
	platform, country, artist, track, album,
	episode_name, episode_show, audiobook_title, audiobook_chapter,
	reason_start, reason_end, skipped, shuffle
FROM plays
WHERE day BETWEEN ? AND ?
ORDER BY seq`

// Mirror replaces the table contents with records, in one transaction.
// Record order is preserved through seq.
func (db *DB) Mirror(ctx context.Context, records []models.PlayRecord) (err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM plays`); err != nil {
		return fmt.Errorf("failed to clear plays: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertPlay)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range records {
		r := &records[i]
		if _, err = stmt.ExecContext(ctx,
			int64(i), timeutil.CivilDay(r.Timestamp), r.Timestamp.UnixNano(), r.MsPlayed,
			r.Platform, r.Country, r.Artist, r.Track, r.Album,
			r.EpisodeName, r.EpisodeShow, r.AudiobookTitle, r.AudiobookChapter,
			r.ReasonStart, r.ReasonEnd, r.Skipped, r.Shuffle,
		); err != nil {
			return fmt.Errorf("failed to insert play %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plays: %w", err)
	}
	db.rows = len(records)
	return nil
}

// Window returns the mirrored records whose local day lies in [start, end],
// inclusive, in source order.
func (db *DB) Window(ctx context.Context, start, end time.Time) ([]models.PlayRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, ErrClosed
	}

	out := make([]models.PlayRecord, 0)
	lo, hi := timeutil.CivilDay(start), timeutil.CivilDay(end)
	if hi < lo {
		return out, nil
	}

	rows, err := db.conn.QueryContext(ctx, selectWindow, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to query window: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		r, err := db.scanPlay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate window: %w", err)
	}
	return out, nil
}

func (db *DB) scanPlay(rows *sql.Rows) (models.PlayRecord, error) {
	var (
		r    models.PlayRecord
		tsNs int64
	)
	if err := rows.Scan(
		&tsNs, &r.MsPlayed,
		&r.Platform, &r.Country, &r.Artist, &r.Track, &r.Album,
		&r.EpisodeName, &r.EpisodeShow, &r.AudiobookTitle, &r.AudiobookChapter,
		&r.ReasonStart, &r.ReasonEnd, &r.Skipped, &r.Shuffle,
	); err != nil {
		return r, fmt.Errorf("failed to scan play: %w", err)
	}
	r.Timestamp = time.Unix(0, tsNs).In(db.loc)
	return r, nil
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

// Package store holds the immutable parsed dataset and answers the window
// queries the selection controller makes on every coarse selection.
//
// The in-memory Store is always the source of truth. A WindowSource such as
// the DuckDB mirror in internal/database may answer window queries instead;
// it must return the same records in the same (source) order.
package store

import (
	"context"
	"sort"
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// WindowSource returns the records whose local day lies in [start, end],
// inclusive, in source order.
type WindowSource interface {
	Window(ctx context.Context, start, end time.Time) ([]models.PlayRecord, error)
}

// Store is the loaded dataset. It is never mutated after New.
type Store struct {
	records      []models.PlayRecord
	availability models.FieldAvailability
	years        []int
}

// New wraps records (in source order) and the field availability of the
// source. The slice is owned by the Store afterwards.
func New(records []models.PlayRecord, availability models.FieldAvailability) *Store {
	if availability == nil {
		availability = models.FieldAvailability{}
	}
	seen := make(map[int]bool)
	var years []int
	for i := range records {
		y := records[i].Timestamp.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return &Store{records: records, availability: availability, years: years}
}

// Empty returns a store with no records and no available fields.
func Empty() *Store {
	return New(nil, nil)
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns all records in source order. Callers must not modify the
// returned slice.
func (s *Store) Records() []models.PlayRecord { return s.records }

// Availability returns the source field availability.
func (s *Store) Availability() models.FieldAvailability { return s.availability }

// Years returns the distinct years present in the data, ascending.
func (s *Store) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

// LatestYear returns the most recent year in the data.
func (s *Store) LatestYear() (int, bool) {
	if len(s.years) == 0 {
		return 0, false
	}
	return s.years[len(s.years)-1], true
}

// Bounds returns the earliest and latest record timestamps.
func (s *Store) Bounds() (time.Time, time.Time, bool) {
	if len(s.records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last := s.records[0].Timestamp, s.records[0].Timestamp
	for i := range s.records {
		ts := s.records[i].Timestamp
		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}
	return first, last, true
}

// Window implements WindowSource over the in-memory records.
func (s *Store) Window(_ context.Context, start, end time.Time) ([]models.PlayRecord, error) {
	return FilterDays(s.records, start, end), nil
}

// FilterDays returns a new slice with the records whose local calendar day
// lies in [start, end], inclusive, preserving order. A record at 23:59:59 on
// end is included; one at 00:00 the day after is not.
func FilterDays(records []models.PlayRecord, start, end time.Time) []models.PlayRecord {
	lo, hi := timeutil.CivilDay(start), timeutil.CivilDay(end)
	out := make([]models.PlayRecord, 0)
	if hi < lo {
		return out
	}
	for i := range records {
		d := timeutil.CivilDay(records[i].Timestamp)
		if d >= lo && d <= hi {
			out = append(out, records[i])
		}
	}
	return out
}

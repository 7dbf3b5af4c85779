// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

// Package timeutil holds the pure date helpers shared by the calendar grid,
// the aggregations, and the chart renderers: day bucketing, ISO week math,
// strict date-input parsing, and human-readable formatting.
//
// All day arithmetic is done on civil dates (year, month, day) so that DST
// transitions never shift a record into a neighbouring day.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the layout of the date text inputs and day keys.
const DateLayout = "2006-01-02"

// LongDateLayout is the layout of the filter summary label.
const LongDateLayout = "Monday, Jan 02, 2006"

// ErrInvalidDate is returned by ParseDate for text that is not a real
// calendar date in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date")

// DayFloor truncates t to midnight of its local day in t's location.
func DayFloor(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's local day.
func EndOfDay(t time.Time) time.Time {
	return DayFloor(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// AddDays moves a day-floored date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DayKey returns the YYYY-MM-DD grouping key of t's local day.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// CivilDay returns the number of days between 1970-01-01 and t's local
// calendar date. Two instants share a CivilDay exactly when they fall on the
// same local day.
func CivilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return CivilDay(a) == CivilDay(b)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return CivilDay(b) - CivilDay(a)
}

// ISOWeekday maps t's weekday to a Monday-first row index (0=Mon..6=Sun).
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday that starts t's ISO week, day-floored.
func WeekStart(t time.Time) time.Time {
	return AddDays(DayFloor(t), -ISOWeekday(t))
}

// WeeksBetween returns the signed number of whole ISO weeks between the
// week containing a and the week containing b.
func WeeksBetween(a, b time.Time) int {
	return DaysBetween(WeekStart(a), WeekStart(b)) / 7
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of t's month, day-floored.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// YearBounds returns the first and last day of year in loc.
func YearBounds(year int, loc *time.Location) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
}

// ParseDate parses a strict YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as a YYYY-MM-DD input value.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatLongDate renders t as "Weekday, Mon DD, YYYY".
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}

// FormatMinutes renders a minute total for tooltips: "42.5 min" below one
// hour, "3h 07m" from one hour up.
func FormatMinutes(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%.1f min", minutes)
	}
	total := int(math.Round(minutes))
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// FormatHour renders an hour of day (0-23) as a 12-hour clock label.
func FormatHour(hour int) string {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayName returns the English name for a Sunday-first weekday index.
func WeekdayName(weekday int) string {
	return weekdayNames[((weekday%7)+7)%7]
}

// WeekdayShort returns the three-letter name for a Sunday-first weekday index.
func WeekdayShort(weekday int) string {
	return WeekdayName(weekday)[:3]
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package calendar

import (
	"errors"
	"math"
	"time"

	"github.com/tomtom215/soundtrail/internal/timeutil"
)

var (
	// ErrEmptyGrid is returned by pixel mapping on a grid with no days.
	ErrEmptyGrid = errors.New("calendar grid has no days")

	// ErrInvalidWindow is returned by NewGrid when the window is inverted.
	ErrInvalidWindow = errors.New("window end is before window start")
)

// Grid is the day layout of one coarse window: every calendar day of the
// whole months that contain the window, addressed by ISO week column
// (Monday first) and weekday row. It is rebuilt on every coarse selection
// and is only used for rendering and pixel/date mapping.
//
// Pixel offsets are relative to the left edge of the first week column.
type Grid struct {
	days        []time.Time
	firstWeek   time.Time
	columnWidth float64
	weekHeight  float64
	lastWeek    int
}

// NewGrid builds the grid covering the months of [windowStart, windowEnd].
// The column width is cellSize+gap; one week column is seven cells tall.
func NewGrid(windowStart, windowEnd time.Time, cellSize, gap float64) (*Grid, error) {
	start := timeutil.MonthStart(windowStart)
	end := timeutil.MonthEnd(windowEnd)
	if end.Before(start) {
		return nil, ErrInvalidWindow
	}

	n := timeutil.DaysBetween(start, end) + 1
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, timeutil.AddDays(start, i))
	}

	width := cellSize + gap
	return &Grid{
		days:        days,
		firstWeek:   timeutil.WeekStart(start),
		columnWidth: width,
		weekHeight:  7 * width,
		lastWeek:    timeutil.WeeksBetween(start, end),
	}, nil
}

// Days returns the grid days in chronological order.
func (g *Grid) Days() []time.Time {
	if g == nil {
		return nil
	}
	return g.days
}

// Len returns the number of days in the grid.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.days)
}

// First returns the grid's first day.
func (g *Grid) First() time.Time {
	if g.Len() == 0 {
		return time.Time{}
	}
	return g.days[0]
}

// Last returns the grid's last day.
func (g *Grid) Last() time.Time {
	if g.Len() == 0 {
		return time.Time{}
	}
	return g.days[len(g.days)-1]
}

// ColumnWidth returns the pixel width of one week column.
func (g *Grid) ColumnWidth() float64 { return g.columnWidth }

// WeekHeight returns the pixel height of one week column.
func (g *Grid) WeekHeight() float64 { return g.weekHeight }

// WeekCount returns the number of week columns.
func (g *Grid) WeekCount() int {
	if g.Len() == 0 {
		return 0
	}
	return g.lastWeek + 1
}

// Width returns the pixel width of all week columns.
func (g *Grid) Width() float64 {
	return float64(g.WeekCount()) * g.columnWidth
}

// Contains reports whether d's calendar day is in the grid.
func (g *Grid) Contains(d time.Time) bool {
	if g.Len() == 0 {
		return false
	}
	day := timeutil.CivilDay(d)
	return day >= timeutil.CivilDay(g.First()) && day <= timeutil.CivilDay(g.Last())
}

// WeekIndex returns the week column of d relative to the grid's first week.
// Days outside the grid yield indexes outside [0, WeekCount()).
func (g *Grid) WeekIndex(d time.Time) int {
	return timeutil.WeeksBetween(g.firstWeek, d)
}

// OffsetFromDate returns the left pixel edge of the week column holding d.
func (g *Grid) OffsetFromDate(d time.Time) float64 {
	return timeutil.OffsetFromDate(g.firstWeek, d, g.columnWidth)
}

// weekAnchor returns the grid day that starts week column idx. The first
// column may start before the grid, in which case the grid's first day
// anchors it; an index past the last column anchors to the last day.
func (g *Grid) weekAnchor(idx int) time.Time {
	if idx <= 0 {
		return g.First()
	}
	if idx > g.lastWeek {
		return g.Last()
	}
	d := timeutil.AddDays(g.firstWeek, 7*idx)
	if timeutil.CivilDay(d) > timeutil.CivilDay(g.Last()) {
		return g.Last()
	}
	return d
}

func (g *Grid) weekIndexAt(x float64) (int, error) {
	if g.Len() == 0 {
		return 0, ErrEmptyGrid
	}
	return timeutil.WeekIndexFromOffset(x, g.columnWidth)
}

// DateFromOffset maps a pixel offset to the day that starts the nearest week
// column, clamped to the grid. It is the mapping used by the start handle.
func (g *Grid) DateFromOffset(x float64) (time.Time, error) {
	idx, err := g.weekIndexAt(x)
	if err != nil {
		return time.Time{}, err
	}
	idx = clampInt(idx, 0, g.lastWeek)
	return g.weekAnchor(idx), nil
}

// EndDateFromOffset maps a pixel offset of the end handle to an end date.
// The end handle sits one day past the selected end date, so the result is
// the day before the anchor of the nearest column. Offsets left of the
// second column clamp to the grid's first day; offsets past the last column
// give the grid's last day.
func (g *Grid) EndDateFromOffset(x float64) (time.Time, error) {
	idx, err := g.weekIndexAt(x)
	if err != nil {
		return time.Time{}, err
	}
	idx = clampInt(idx, 0, g.lastWeek+1)
	if idx > g.lastWeek {
		return g.Last(), nil
	}
	anchor := g.weekAnchor(idx)
	if !anchor.After(g.First()) {
		return g.First(), nil
	}
	return timeutil.AddDays(anchor, -1), nil
}

// HandlePositions holds the pixel offsets of the two drag handles.
type HandlePositions struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// HandlePositions places the start handle at the column of start and the
// end handle one day past end. The end handle never renders at or before
// the start handle: it is pushed to start+handleWidth when it would.
func (g *Grid) HandlePositions(start, end time.Time, handleWidth float64) HandlePositions {
	startPx := g.OffsetFromDate(start)

	next := timeutil.AddDays(timeutil.DayFloor(end), 1)
	var endPx float64
	if g.Len() > 0 && timeutil.CivilDay(next) > timeutil.CivilDay(g.Last()) {
		endPx = float64(g.lastWeek+1) * g.columnWidth
	} else {
		endPx = g.OffsetFromDate(next)
	}
	if endPx <= startPx {
		endPx = startPx + handleWidth
	}
	return HandlePositions{Start: startPx, End: endPx}
}

// Handle identifies one of the two range handles.
type Handle string

// Range handles.
const (
	HandleStart Handle = "start"
	HandleEnd   Handle = "end"
)

// Valid reports whether h names a handle.
func (h Handle) Valid() bool {
	return h == HandleStart || h == HandleEnd
}

// HitTest returns the handle whose grab region contains x. The grab region
// is grabWidth wide and centred on the handle. When the regions overlap the
// closer handle wins, and the end handle wins exact ties so that a collapsed
// range can still be widened to the right.
func HitTest(x float64, pos HandlePositions, grabWidth float64) (Handle, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", false
	}
	half := grabWidth / 2
	dStart := math.Abs(x - pos.Start)
	dEnd := math.Abs(x - pos.End)
	inStart := dStart <= half
	inEnd := dEnd <= half
	switch {
	case inStart && inEnd:
		if dStart < dEnd {
			return HandleStart, true
		}
		return HandleEnd, true
	case inStart:
		return HandleStart, true
	case inEnd:
		return HandleEnd, true
	}
	return "", false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

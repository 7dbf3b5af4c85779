// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package calendar lays out the calendar heatmap and maps between pixel
offsets and calendar days.

A Grid covers every day of the whole months that contain a coarse window.
Columns are ISO weeks (Monday first), rows are weekdays. The pixel mapping
is column based:

	date -> pixel   weeks between the grid's first week and the date's week, times the column width
	pixel -> date   nearest column, clamped to the grid, then the day that starts that column

The start handle sits on the left edge of its day's column. The end handle
sits one day past the end date so the highlighted band covers the whole last
day, and is pushed right of the start handle when the two would collide.

Mapping a NaN or infinite offset, or using a grid with no days or a
non-positive column width, returns an error so that callers can drop the
frame without touching selection state.
*/
package calendar

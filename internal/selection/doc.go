// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package selection owns the interactive state of the dashboard: the coarse
window, the committed range, the calendar grid and the drag handles.

# Dashboard

Dashboard is the context object every operation goes through. It holds the
loaded store, the current coarse window and its records, the calendar grid,
the RangeState and the last rendered Snapshot. It is not safe for
concurrent use; the Controller serializes access.

Two triggers run the filter/aggregate/render pipeline:

  - coarse selection (SelectYear, ApplyRange): queries the window, rebuilds
    the grid and renders the whole window. Handles sit on the window edges.
  - fine selection (a drag commit): filters the window records already in
    memory down to the dragged range and renders again.

Each run increments the render version and replaces the Snapshot as a
whole; there is never a partially rendered state.

# Drag

DragController is the handle state machine:

	idle --PointerDown(handle)--> dragging(handle)
	dragging --PointerMove(x)--> dragging   (live range update, no render)
	dragging --PointerUp--> idle            (commit: one pipeline run)

Pointer moves that cannot be mapped to a date (no grid, NaN or infinite
offsets, zero column width) are dropped and the last valid range kept.

# Controller

Controller runs the Dashboard on a single goroutine (a suture service).
HTTP handlers and WebSocket clients send commands and wait for the reply.
New snapshots and drag frames are handed to a Publisher.
*/
package selection

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package selection

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// EventType is the kind of a pointer event on the calendar.
type EventType string

// Pointer event types.
const (
	EventPointerDown EventType = "pointer_down"
	EventPointerMove EventType = "pointer_move"
	EventPointerUp   EventType = "pointer_up"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventPointerDown, EventPointerMove, EventPointerUp:
		return true
	}
	return false
}

// Event is one pointer event, independent of any UI toolkit.
//
// A pointer_down names the grabbed handle, or leaves Handle empty and gives
// X so the handle is found by hit testing. pointer_move carries the pointer
// offset relative to the first week column. pointer_up carries nothing.
type Event struct {
	Type   EventType       `json:"type" validate:"required,oneof=pointer_down pointer_move pointer_up"`
	Handle calendar.Handle `json:"handle,omitempty" validate:"omitempty,oneof=start end"`
	X      *float64        `json:"x,omitempty"`
}

// PointerDown grabs handle h.
func PointerDown(h calendar.Handle) Event {
	return Event{Type: EventPointerDown, Handle: h}
}

// PointerDownAt grabs whichever handle's grab region contains x.
func PointerDownAt(x float64) Event {
	return Event{Type: EventPointerDown, X: &x}
}

// PointerMove moves the grabbed handle to x.
func PointerMove(x float64) Event {
	return Event{Type: EventPointerMove, X: &x}
}

// PointerUp releases the grabbed handle.
func PointerUp() Event {
	return Event{Type: EventPointerUp}
}

// Frame is the live feedback of one applied pointer move: handle positions
// and the band label. It is broadcast without re-running the pipeline.
type Frame struct {
	Handle  calendar.Handle          `json:"handle"`
	Start   string                   `json:"start"`
	End     string                   `json:"end"`
	Handles calendar.HandlePositions `json:"handles"`
	Label   string                   `json:"label"`
}

// DragController is the handle state machine over one calendar grid.
// It owns a copy of the range dates while a drag is in progress.
type DragController struct {
	grid        *calendar.Grid
	handleWidth float64
	grabWidth   float64

	active calendar.Handle
	start  time.Time
	end    time.Time
}

// NewDragController returns an idle controller with no grid.
func NewDragController(handleWidth, grabWidth float64) *DragController {
	return &DragController{handleWidth: handleWidth, grabWidth: grabWidth}
}

// Reset installs a new grid and range and returns to idle. Called on every
// coarse selection and after every commit.
func (c *DragController) Reset(grid *calendar.Grid, start, end time.Time) {
	c.grid = grid
	c.start = timeutil.DayFloor(start)
	c.end = timeutil.DayFloor(end)
	c.active = ""
}

// Active returns the grabbed handle, or "" when idle.
func (c *DragController) Active() calendar.Handle { return c.active }

// Dragging reports whether a handle is grabbed.
func (c *DragController) Dragging() bool { return c.active != "" }

// Range returns the current dates.
func (c *DragController) Range() (time.Time, time.Time) { return c.start, c.end }

// Positions returns the handle pixel offsets for the current dates.
func (c *DragController) Positions() calendar.HandlePositions {
	if c.grid.Len() == 0 {
		return calendar.HandlePositions{}
	}
	return c.grid.HandlePositions(c.start, c.end, c.handleWidth)
}

// Down grabs handle h. A second Down while dragging switches handles.
func (c *DragController) Down(h calendar.Handle) error {
	if c.grid.Len() == 0 {
		return fmt.Errorf("%w: calendar has no days", ErrInvalidDrag)
	}
	if !h.Valid() {
		return fmt.Errorf("%w: unknown handle %q", ErrInvalidDrag, h)
	}
	c.active = h
	return nil
}

// DownAt grabs the handle whose grab region contains x.
func (c *DragController) DownAt(x float64) (calendar.Handle, error) {
	if c.grid.Len() == 0 {
		return "", fmt.Errorf("%w: calendar has no days", ErrInvalidDrag)
	}
	h, ok := calendar.HitTest(x, c.Positions(), c.grabWidth)
	if !ok {
		return "", fmt.Errorf("%w: no handle at offset %v", ErrInvalidDrag, x)
	}
	c.active = h
	return h, nil
}

// Move maps x to a date for the grabbed handle, clamps it against the other
// handle and updates the range. A degenerate offset leaves the range as it
// was and returns an error wrapping ErrFrameDropped.
func (c *DragController) Move(x float64) (Frame, error) {
	if c.active == "" {
		return Frame{}, ErrNotDragging
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Frame{}, fmt.Errorf("%w: offset %v", ErrFrameDropped, x)
	}

	start, end := c.start, c.end
	switch c.active {
	case calendar.HandleStart:
		d, err := c.grid.DateFromOffset(x)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: %v", ErrFrameDropped, err)
		}
		if d.After(end) {
			d = end
		}
		start = d
	case calendar.HandleEnd:
		d, err := c.grid.EndDateFromOffset(x)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: %v", ErrFrameDropped, err)
		}
		if d.Before(start) {
			d = start
		}
		end = d
	}

	pos := c.grid.HandlePositions(start, end, c.handleWidth)
	if math.IsNaN(pos.Start) || math.IsNaN(pos.End) {
		return Frame{}, fmt.Errorf("%w: handle position is not a number", ErrFrameDropped)
	}
	c.start, c.end = start, end

	return Frame{
		Handle:  c.active,
		Start:   timeutil.FormatDate(start),
		End:     timeutil.FormatDate(end),
		Handles: pos,
		Label:   RangeLabel(start, end),
	}, nil
}

// Up releases the grabbed handle and returns the range to commit.
func (c *DragController) Up() (time.Time, time.Time, error) {
	if c.active == "" {
		return time.Time{}, time.Time{}, ErrNotDragging
	}
	c.active = ""
	return c.start, c.end, nil
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package selection

import "errors"

var (
	// ErrNotLoaded is returned by every command until the dataset resolves.
	ErrNotLoaded = errors.New("dataset is still loading")

	// ErrDatasetUnavailable is returned by every command after a failed load.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrInvalidDate wraps timeutil.ErrInvalidDate for explicit range input.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidYear is returned for a year outside 1..9999.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidDrag is returned for malformed drag events.
	ErrInvalidDrag = errors.New("invalid drag event")

	// ErrNotDragging is returned by Move and Up outside a drag.
	ErrNotDragging = errors.New("no drag in progress")

	// ErrFrameDropped marks a pointer move that could not be mapped to a date.
	ErrFrameDropped = errors.New("drag frame dropped")

	// ErrControllerStopped is returned by controller calls once Serve has exited.
	ErrControllerStopped = errors.New("selection controller stopped")
)

// API error codes reported for selection errors.
const (
	CodeDatasetLoading     = "DATASET_LOADING"
	CodeDatasetUnavailable = "DATASET_UNAVAILABLE"
	CodeInvalidDate        = "INVALID_DATE"
	CodeInvalidYear        = "INVALID_YEAR"
	CodeInvalidDrag        = "INVALID_DRAG"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorCode maps a selection error to its API error code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotLoaded):
		return CodeDatasetLoading
	case errors.Is(err, ErrDatasetUnavailable):
		return CodeDatasetUnavailable
	case errors.Is(err, ErrInvalidDate):
		return CodeInvalidDate
	case errors.Is(err, ErrInvalidYear):
		return CodeInvalidYear
	case errors.Is(err, ErrInvalidDrag), errors.Is(err, ErrNotDragging):
		return CodeInvalidDrag
	}
	return CodeInternal
}

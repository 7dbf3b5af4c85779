// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/selection"
)

// Dashboard returns the current snapshot. It succeeds in every dataset
// state; while loading or after a failure the regions carry that state.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.controller.Snapshot(r.Context())
	if err != nil {
		respondSelectionError(w, r, err)
		return
	}
	respondSuccess(w, snap, snapshotMeta(snap, start))
}

// Years returns the years present in the dataset, ascending.
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	years, err := h.controller.Years(r.Context())
	if err != nil {
		respondSelectionError(w, r, err)
		return
	}
	if years == nil {
		years = []int{}
	}
	respondSuccess(w, YearsResponse{Years: years}, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// SelectYear makes a calendar year the coarse window.
func (h *Handler) SelectYear(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req YearRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, err := h.controller.SelectYear(r.Context(), req.Year)
	if err != nil {
		respondSelectionError(w, r, err)
		return
	}
	respondSuccess(w, snap, snapshotMeta(snap, start))
}

// ApplyRange applies the typed start and end dates. Invalid text is
// rejected with INVALID_DATE and leaves the dashboard unchanged; a start
// after the end is swapped.
func (h *Handler) ApplyRange(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req RangeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, swapped, err := h.controller.ApplyRange(r.Context(), req.Start, req.End)
	if err != nil {
		respondSelectionError(w, r, err)
		return
	}
	respondSuccess(w, RangeResponse{
		Swapped:   swapped,
		Inputs:    snap.Inputs,
		Dashboard: snap,
	}, snapshotMeta(snap, start))
}

// Drag feeds one pointer event to the handle drag. A pointer_move answers
// with the live frame; pointer_up answers with the committed snapshot.
func (h *Handler) Drag(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var ev selection.Event
	if !decodeAndValidate(w, r, &ev) {
		return
	}

	res, err := h.controller.Drag(r.Context(), ev)
	if err != nil {
		respondSelectionError(w, r, err)
		return
	}
	respondSuccess(w, res, snapshotMeta(res.Snapshot, start))
}

// Layout records the container widths reported by the page and returns the
// re-rendered snapshot.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req LayoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, err := h.controller.SetWidths(r.Context(), req.regionWidths())
	if err != nil {
		respondSelectionError(w, r, err)
		return
	}
	respondSuccess(w, snap, snapshotMeta(snap, start))
}

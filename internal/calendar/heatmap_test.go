// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package calendar

import (
	"strings"
	"testing"
)

func TestRenderHeatmap(t *testing.T) {
	t.Parallel()

	g := mustGrid(t, day(2024, 1, 1), day(2024, 1, 31))
	opts := DefaultOptions()
	daily := map[string]float64{"2024-01-01": 3, "2024-01-02": 1.5}

	hm := RenderHeatmap(g, daily, 3, day(2024, 1, 1), day(2024, 1, 31), opts)

	if got := strings.Count(hm.SVG, "data-date="); got != 31 {
		t.Errorf("cell count = %d, want 31", got)
	}
	if !strings.Contains(hm.SVG, "<title>Monday, Jan 01, 2024: 3.0 min</title>") {
		t.Error("missing tooltip for 2024-01-01")
	}
	if !strings.Contains(hm.SVG, "<title>Wednesday, Jan 03, 2024: 0.0 min</title>") {
		t.Error("missing tooltip for an empty day")
	}
	if !strings.Contains(hm.SVG, `fill="`+opts.NeutralColor+`" data-date="2024-01-03"`) {
		t.Error("empty day should use the neutral colour")
	}
	if !strings.Contains(hm.SVG, `fill="`+opts.HighColor+`" data-date="2024-01-01"`) {
		t.Error("max day should use the high end of the scale")
	}
	if !hm.Legend || !strings.Contains(hm.SVG, `class="legend"`) {
		t.Error("legend should be drawn when max > 0")
	}
	if strings.Count(hm.SVG, `class="handle-grab"`) != 2 {
		t.Error("expected two handle grab regions")
	}
	if !strings.Contains(hm.SVG, `class="range-band"`) {
		t.Error("missing range band")
	}
	if hm.OffsetX != labelColumnWidth {
		t.Errorf("OffsetX = %v", hm.OffsetX)
	}
}

func TestRenderHeatmapEmptyScale(t *testing.T) {
	t.Parallel()

	g := mustGrid(t, day(2024, 2, 1), day(2024, 2, 29))
	opts := DefaultOptions()

	hm := RenderHeatmap(g, nil, 0, g.First(), g.Last(), opts)
	if hm.Legend || strings.Contains(hm.SVG, `class="legend"`) {
		t.Error("legend must be suppressed when max is zero")
	}
	if got := strings.Count(hm.SVG, `fill="`+opts.NeutralColor+`" data-date=`); got != 29 {
		t.Errorf("neutral cells = %d, want 29", got)
	}
}

func TestRenderHeatmapIdempotent(t *testing.T) {
	t.Parallel()

	g := mustGrid(t, day(2024, 1, 1), day(2024, 6, 30))
	daily := map[string]float64{"2024-03-05": 42, "2024-04-01": 7}
	a := RenderHeatmap(g, daily, 42, day(2024, 2, 1), day(2024, 4, 10), DefaultOptions())
	b := RenderHeatmap(g, daily, 42, day(2024, 2, 1), day(2024, 4, 10), DefaultOptions())
	if a != b {
		t.Error("rendering the same input twice produced different output")
	}
}

func TestScale(t *testing.T) {
	t.Parallel()

	s := NewScale("#000000", "#ffffff", 10)
	if got := Hex(s.At(0)); got != "#000000" {
		t.Errorf("At(0) = %s", got)
	}
	if got := Hex(s.At(10)); got != "#ffffff" {
		t.Errorf("At(max) = %s", got)
	}
	if got := Hex(s.At(5)); got != "#808080" {
		t.Errorf("At(mid) = %s", got)
	}
	if got := Hex(s.At(50)); got != "#ffffff" {
		t.Errorf("At(above max) = %s, want clamped", got)
	}
	if !NewScale("#000", "#fff", 0).Empty() {
		t.Error("zero max should be empty")
	}
}

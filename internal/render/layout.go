// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import "github.com/tomtom215/soundtrail/internal/config"

// Layout holds the chart geometry shared by all renderers.
type Layout struct {
	// Height is the fixed chart height in pixels.
	Height int
	// DefaultWidth is used for regions whose width was never reported.
	DefaultWidth int
	// MinWidth is the narrowest region a chart is drawn in.
	MinWidth int
}

// DefaultLayout returns the geometry used when no configuration is given.
func DefaultLayout() Layout {
	return Layout{Height: 260, DefaultWidth: 640, MinWidth: 240}
}

// LayoutFromConfig builds a Layout from the dashboard configuration.
func LayoutFromConfig(cfg config.DashboardConfig) Layout {
	l := DefaultLayout()
	if cfg.ChartHeight > 0 {
		l.Height = cfg.ChartHeight
	}
	if cfg.DefaultChartWidth > 0 {
		l.DefaultWidth = cfg.DefaultChartWidth
	}
	if cfg.MinChartWidth > 0 {
		l.MinWidth = cfg.MinChartWidth
	}
	return l
}

// Widths records the last reported pixel width per region.
type Widths map[Region]int

// For returns the width to draw region at.
func (l Layout) For(widths Widths, region Region) int {
	if w, ok := widths[region]; ok && w > 0 {
		return w
	}
	return l.DefaultWidth
}

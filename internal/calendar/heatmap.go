// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// Options controls the heatmap geometry and palette.
type Options struct {
	CellSize        float64
	CellGap         float64
	HandleWidth     float64
	HandleGrabWidth float64
	FontSize        float64
	LowColor        string
	HighColor       string
	NeutralColor    string
	BandColor       string
	HandleColor     string
	LegendSteps     int
}

// DefaultOptions returns the standard heatmap look.
func DefaultOptions() Options {
	return Options{
		CellSize:        12,
		CellGap:         2,
		HandleWidth:     3,
		HandleGrabWidth: 16,
		FontSize:        10,
		LowColor:        "#d6e685",
		HighColor:       "#1e6823",
		NeutralColor:    "#ebedf0",
		BandColor:       "#3b82f6",
		HandleColor:     "#1d4ed8",
		LegendSteps:     5,
	}
}

// Margins around the week columns, in pixels.
const (
	labelColumnWidth = 30.0
	legendHeight     = 22.0
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Heatmap is a rendered calendar region.
type Heatmap struct {
	SVG      string          `json:"svg"`
	Handles  HandlePositions `json:"handles"`
	OffsetX  float64         `json:"offset_x"`
	MaxDaily float64         `json:"max_daily_minutes"`
	Legend   bool            `json:"legend"`
}

// RenderHeatmap draws the full calendar SVG for grid: one cell per day
// coloured by its total minutes, month and weekday labels, the translucent
// band between the handles, both handles with their wider grab regions, and
// the legend. The whole document is rebuilt on every call.
//
// daily is keyed by timeutil.DayKey. When maxDaily is zero every cell is
// neutral and the legend is omitted.
func RenderHeatmap(grid *Grid, daily map[string]float64, maxDaily float64, start, end time.Time, opts Options) Heatmap {
	scale := NewScale(opts.LowColor, opts.HighColor, maxDaily)
	cw := grid.ColumnWidth()
	top := opts.FontSize + 6
	width := labelColumnWidth + grid.Width() + opts.CellGap
	height := top + grid.WeekHeight()
	showLegend := !scale.Empty()
	if showLegend {
		height += legendHeight
	}

	handles := grid.HandlePositions(start, end, opts.HandleWidth)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg class="calendar-heatmap" width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" data-offset-x="%s" data-column-width="%s" data-weeks="%d">`+"\n",
		px(width), px(height), px(width), px(height), px(labelColumnWidth), px(cw), grid.WeekCount())
	fmt.Fprintf(&sb, `  <style>.label{font-family:sans-serif;font-size:%spx;fill:#666}.handle-grab{cursor:ew-resize}</style>`+"\n", px(opts.FontSize))

	// weekday labels on Monday, Wednesday and Friday rows
	for row, name := range []string{"Mon", "", "Wed", "", "Fri", "", ""} {
		if name == "" {
			continue
		}
		y := top + float64(row)*cw + opts.CellSize
		fmt.Fprintf(&sb, `  <text x="0" y="%s" class="label">%s</text>`+"\n", px(y), name)
	}

	lastMonth := -1
	for _, day := range grid.Days() {
		if day.Day() != 1 || int(day.Month()) == lastMonth {
			continue
		}
		lastMonth = int(day.Month())
		x := labelColumnWidth + grid.OffsetFromDate(day)
		fmt.Fprintf(&sb, `  <text x="%s" y="%s" class="label">%s</text>`+"\n",
			px(x), px(opts.FontSize), monthNames[day.Month()-1])
	}

	for _, day := range grid.Days() {
		key := timeutil.DayKey(day)
		minutes := daily[key]
		fill := opts.NeutralColor
		if minutes > 0 && showLegend {
			fill = Hex(scale.At(minutes))
		}
		x := labelColumnWidth + grid.OffsetFromDate(day)
		y := top + float64(timeutil.ISOWeekday(day))*cw
		fmt.Fprintf(&sb, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" data-date="%s" data-minutes="%s">`+"\n",
			px(x), px(y), px(opts.CellSize), px(opts.CellSize), fill, key, strconv.FormatFloat(minutes, 'f', 1, 64))
		fmt.Fprintf(&sb, `    <title>%s: %s</title>`+"\n", timeutil.FormatLongDate(day), timeutil.FormatMinutes(minutes))
		sb.WriteString("  </rect>\n")
	}

	bandX := labelColumnWidth + handles.Start
	fmt.Fprintf(&sb, `  <rect class="range-band" x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="0.18" pointer-events="none"/>`+"\n",
		px(bandX), px(top), px(handles.End-handles.Start), px(grid.WeekHeight()), opts.BandColor)

	writeHandle(&sb, HandleStart, labelColumnWidth+handles.Start, top, grid.WeekHeight(), opts)
	writeHandle(&sb, HandleEnd, labelColumnWidth+handles.End, top, grid.WeekHeight(), opts)

	if showLegend {
		writeLegend(&sb, scale, top+grid.WeekHeight()+6, opts)
	}

	sb.WriteString("</svg>")
	return Heatmap{
		SVG:      sb.String(),
		Handles:  handles,
		OffsetX:  labelColumnWidth,
		MaxDaily: maxDaily,
		Legend:   showLegend,
	}
}

func writeHandle(sb *strings.Builder, h Handle, x, top, height float64, opts Options) {
	fmt.Fprintf(sb, `  <g class="handle handle-%s" data-handle="%s">`+"\n", h, h)
	fmt.Fprintf(sb, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		px(x-opts.HandleWidth/2), px(top-2), px(opts.HandleWidth), px(height+4), opts.HandleColor)
	fmt.Fprintf(sb, `    <rect class="handle-grab" x="%s" y="%s" width="%s" height="%s" fill="transparent"/>`+"\n",
		px(x-opts.HandleGrabWidth/2), px(top-2), px(opts.HandleGrabWidth), px(height+4))
	sb.WriteString("  </g>\n")
}

func writeLegend(sb *strings.Builder, scale Scale, y float64, opts Options) {
	steps := opts.LegendSteps
	if steps < 2 {
		steps = 2
	}
	x := labelColumnWidth
	fmt.Fprintf(sb, `  <g class="legend">`+"\n")
	fmt.Fprintf(sb, `    <text x="%s" y="%s" class="label">Less</text>`+"\n", px(x), px(y+opts.CellSize-2))
	x += 28
	for i := 0; i < steps; i++ {
		v := scale.Max * float64(i+1) / float64(steps)
		fmt.Fprintf(sb, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s</title></rect>`+"\n",
			px(x), px(y), px(opts.CellSize), px(opts.CellSize), Hex(scale.At(v)), timeutil.FormatMinutes(v))
		x += opts.CellSize + opts.CellGap
	}
	fmt.Fprintf(sb, `    <text x="%s" y="%s" class="label">More (max %s)</text>`+"\n",
		px(x+4), px(y+opts.CellSize-2), timeutil.FormatMinutes(scale.Max))
	sb.WriteString("  </g>\n")
}

// px formats a pixel value without trailing zeros.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

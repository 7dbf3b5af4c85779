// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette.
var (
	barColor     = chart.ColorBlue
	musicColor   = chart.ColorBlue
	podcastColor = chart.ColorOrange
	axisColor    = chart.ColorAlternateGray
	gridColor    = chart.ColorLightGray
	textColor    = chart.ColorBlack
)

// Plot margins in pixels.
const (
	marginTop    = 10.0
	marginRight  = 8.0
	marginBottom = 22.0
	marginLeft   = 48.0
	fontSize     = 10.0
	animDuration = "600ms"
)

func hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// px formats a pixel value rounded to two decimals, without trailing zeros.
func px(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func esc(s string) string { return html.EscapeString(s) }

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}

func openSVG(sb *strings.Builder, class string, width, height int) {
	fmt.Fprintf(sb, `<svg class="chart %s" width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		class, width, height, width, height)
	fmt.Fprintf(sb, `  <style>.tick{font-family:sans-serif;font-size:%spx;fill:%s}</style>`+"\n", px(fontSize), hex(textColor))
}

// writeValueAxis draws horizontal grid lines with minute labels at 0, max/2
// and max.
func writeValueAxis(sb *strings.Builder, maxValue, left, right, top, plotH float64, format func(float64) string) {
	for i := 0; i <= 2; i++ {
		v := maxValue * float64(i) / 2
		y := top + plotH - plotH*float64(i)/2
		fmt.Fprintf(sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			px(left), px(y), px(right), px(y), hex(gridColor))
		fmt.Fprintf(sb, `  <text class="tick" x="%s" y="%s" text-anchor="end">%s</text>`+"\n",
			px(left-4), px(y+3), esc(format(v)))
	}
}

// animateFromZero grows attr from baseline to value.
func animateFromZero(sb *strings.Builder, attr string, from, to float64) {
	fmt.Fprintf(sb, `    <animate attributeName="%s" from="%s" to="%s" dur="%s" fill="freeze"/>`+"\n",
		attr, px(from), px(to), animDuration)
}

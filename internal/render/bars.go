// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"fmt"
	"strings"

	"github.com/tomtom215/soundtrail/internal/timeutil"
)

type bar struct {
	label   string
	tooltip string
	value   float64
}

// columnChart draws one vertical bar per entry. Every labelEvery-th bar
// gets an axis label.
func columnChart(class string, bars []bar, width, height, labelEvery int) string {
	w, h := float64(width), float64(height)
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	baseline := marginTop + plotH

	maxValue := 0.0
	for _, b := range bars {
		maxValue = max(maxValue, b.value)
	}

	var sb strings.Builder
	openSVG(&sb, class, width, height)
	writeValueAxis(&sb, maxValue, marginLeft, w-marginRight, marginTop, plotH, timeutil.FormatMinutes)

	slot := plotW / float64(len(bars))
	barW := slot * 0.8
	for i, b := range bars {
		x := marginLeft + float64(i)*slot + (slot-barW)/2
		bh := 0.0
		if maxValue > 0 {
			bh = b.value / maxValue * plotH
		}
		y := baseline - bh
		fmt.Fprintf(&sb, `  <rect class="bar" x="%s" y="%s" width="%s" height="%s" fill="%s">`+"\n",
			px(x), px(y), px(barW), px(bh), hex(barColor))
		fmt.Fprintf(&sb, "    <title>%s</title>\n", esc(b.tooltip))
		animateFromZero(&sb, "height", 0, bh)
		animateFromZero(&sb, "y", baseline, y)
		sb.WriteString("  </rect>\n")

		if labelEvery > 0 && i%labelEvery == 0 {
			fmt.Fprintf(&sb, `  <text class="tick" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
				px(x+barW/2), px(baseline+14), esc(b.label))
		}
	}
	fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		px(marginLeft), px(baseline), px(w-marginRight), px(baseline), hex(axisColor))
	sb.WriteString("</svg>")
	return sb.String()
}

// barChart draws one horizontal bar per entry, labels on the left and the
// value on the right of each bar.
func barChart(class string, bars []bar, width, height int) string {
	w, h := float64(width), float64(height)
	labelW := min(w*0.4, 240)
	valueW := 64.0
	left := marginRight + labelW
	plotW := w - left - valueW - marginRight
	plotH := h - marginTop - marginRight

	maxValue := 0.0
	for _, b := range bars {
		maxValue = max(maxValue, b.value)
	}

	var sb strings.Builder
	openSVG(&sb, class, width, height)

	row := plotH / float64(len(bars))
	barH := row * 0.75
	maxChars := int(labelW / (fontSize * 0.6))
	for i, b := range bars {
		y := marginTop + float64(i)*row + (row-barH)/2
		bw := 0.0
		if maxValue > 0 {
			bw = b.value / maxValue * plotW
		}
		fmt.Fprintf(&sb, `  <text class="tick" x="%s" y="%s" text-anchor="end">%s<title>%s</title></text>`+"\n",
			px(left-6), px(y+barH/2+3), esc(truncate(b.label, maxChars)), esc(b.label))
		fmt.Fprintf(&sb, `  <rect class="bar" x="%s" y="%s" width="%s" height="%s" fill="%s">`+"\n",
			px(left), px(y), px(bw), px(barH), hex(barColor))
		fmt.Fprintf(&sb, "    <title>%s</title>\n", esc(b.tooltip))
		animateFromZero(&sb, "width", 0, bw)
		sb.WriteString("  </rect>\n")
		fmt.Fprintf(&sb, `  <text class="tick" x="%s" y="%s">%s</text>`+"\n",
			px(left+bw+4), px(y+barH/2+3), esc(timeutil.FormatMinutes(b.value)))
	}
	fmt.Fprintf(&sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		px(left), px(marginTop), px(left), px(marginTop+plotH), hex(axisColor))
	sb.WriteString("</svg>")
	return sb.String()
}

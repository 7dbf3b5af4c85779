// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package render

import (
	"fmt"
	"strings"

	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

const hourLabelLayout = "Jan 02 15:04"

// ContentShare renders Music vs Podcast as a normalized stacked area over
// the hour buckets. Buckets are spaced evenly by index; each one also gets
// an invisible hover column with the exact split.
func ContentShare(buckets []models.ContentShareBucket, width int, layout Layout) Fragment {
	if len(buckets) == 0 {
		return Empty(RegionContentShare, StateNoData, MessageNoData)
	}
	if width < layout.MinWidth {
		return Empty(RegionContentShare, StateTooSmall, MessageTooSmall)
	}

	w, h := float64(width), float64(layout.Height)
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	baseline := marginTop + plotH

	xs := make([]float64, len(buckets))
	if len(buckets) == 1 {
		xs[0] = marginLeft
	} else {
		step := plotW / float64(len(buckets)-1)
		for i := range buckets {
			xs[i] = marginLeft + float64(i)*step
		}
	}

	// Music fills [0, musicShare], podcast fills [musicShare, 1].
	split := make([]float64, len(buckets))
	for i, b := range buckets {
		split[i] = baseline - (1-b.PodcastShare())*plotH
	}
	top := make([]float64, len(buckets))
	for i := range top {
		top[i] = marginTop
	}
	flat := make([]float64, len(buckets))
	for i := range flat {
		flat[i] = baseline
	}

	var sb strings.Builder
	openSVG(&sb, "content-share", width, layout.Height)
	writeValueAxis(&sb, 100, marginLeft, w-marginRight, marginTop, plotH, func(v float64) string {
		return fmt.Sprintf("%.0f%%", v)
	})

	writeArea(&sb, "area-music", hex(musicColor), areaPath(xs, flat, split, plotW, len(buckets) == 1),
		areaPath(xs, flat, flat, plotW, len(buckets) == 1))
	writeArea(&sb, "area-podcast", hex(podcastColor), areaPath(xs, split, top, plotW, len(buckets) == 1),
		areaPath(xs, flat, flat, plotW, len(buckets) == 1))

	colW := plotW / float64(len(buckets))
	for i, b := range buckets {
		x := xs[i] - colW/2
		if len(buckets) == 1 {
			x = marginLeft
		}
		fmt.Fprintf(&sb, `  <rect class="hover-column" x="%s" y="%s" width="%s" height="%s" fill="transparent">`+"\n",
			px(x), px(marginTop), px(colW), px(plotH))
		fmt.Fprintf(&sb, "    <title>%s: %s %s (%.1f%%), %s %s (%.1f%%)</title>\n",
			esc(b.Hour.Format(hourLabelLayout)),
			models.ContentMusic, esc(timeutil.FormatMinutes(b.Music)), (1-b.PodcastShare())*100,
			models.ContentPodcast, esc(timeutil.FormatMinutes(b.Podcast)), b.PodcastShare()*100)
		sb.WriteString("  </rect>\n")
	}

	fmt.Fprintf(&sb, `  <text class="tick" x="%s" y="%s">%s</text>`+"\n",
		px(marginLeft), px(baseline+14), esc(buckets[0].Hour.Format(hourLabelLayout)))
	if len(buckets) > 1 {
		fmt.Fprintf(&sb, `  <text class="tick" x="%s" y="%s" text-anchor="end">%s</text>`+"\n",
			px(w-marginRight), px(baseline+14), esc(buckets[len(buckets)-1].Hour.Format(hourLabelLayout)))
	}
	writeLegendItem(&sb, w-marginRight-150, marginTop+2, hex(musicColor), models.ContentMusic)
	writeLegendItem(&sb, w-marginRight-75, marginTop+2, hex(podcastColor), models.ContentPodcast)
	sb.WriteString("</svg>")

	return Fragment{Region: RegionContentShare, State: StateReady, HTML: sb.String()}
}

// areaPath closes the band between lower and upper. A single bucket is
// drawn as a full-width band.
func areaPath(xs, lower, upper []float64, plotW float64, single bool) string {
	if single {
		x0, x1 := xs[0], xs[0]+plotW
		return fmt.Sprintf("M%s,%s L%s,%s L%s,%s L%s,%s Z",
			px(x0), px(lower[0]), px(x0), px(upper[0]), px(x1), px(upper[0]), px(x1), px(lower[0]))
	}
	var sb strings.Builder
	for i := range xs {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%s,%s ", cmd, px(xs[i]), px(upper[i]))
	}
	for i := len(xs) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "L%s,%s ", px(xs[i]), px(lower[i]))
	}
	sb.WriteString("Z")
	return sb.String()
}

// writeArea draws path and morphs it up from the flat baseline path, which
// has the same command structure.
func writeArea(sb *strings.Builder, class, color, path, from string) {
	fmt.Fprintf(sb, `  <path class="%s" d="%s" fill="%s" fill-opacity="0.85">`+"\n", class, path, color)
	fmt.Fprintf(sb, `    <animate attributeName="d" from="%s" to="%s" dur="%s" fill="freeze"/>`+"\n", from, path, animDuration)
	sb.WriteString("  </path>\n")
}

func writeLegendItem(sb *strings.Builder, x, y float64, color, label string) {
	fmt.Fprintf(sb, `  <rect x="%s" y="%s" width="10" height="10" fill="%s"/>`+"\n", px(x), px(y), color)
	fmt.Fprintf(sb, `  <text class="tick" x="%s" y="%s">%s</text>`+"\n", px(x+14), px(y+9), esc(label))
}

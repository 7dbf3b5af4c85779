// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package calendar

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Scale is a sequential two-stop colour scale over [0, Max].
type Scale struct {
	Low  drawing.Color
	High drawing.Color
	Max  float64
}

// NewScale builds a scale from hex endpoints such as "#ebedf0".
func NewScale(lowHex, highHex string, maxValue float64) Scale {
	return Scale{
		Low:  drawing.ColorFromHex(trimHash(lowHex)),
		High: drawing.ColorFromHex(trimHash(highHex)),
		Max:  maxValue,
	}
}

// Empty reports whether the scale has no usable domain.
func (s Scale) Empty() bool {
	return s.Max <= 0 || math.IsNaN(s.Max) || math.IsInf(s.Max, 0)
}

// At returns the colour for v. Values are clamped to the domain.
func (s Scale) At(v float64) drawing.Color {
	if s.Empty() || math.IsNaN(v) {
		return s.Low
	}
	t := v / s.Max
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return drawing.Color{
		R: lerp(s.Low.R, s.High.R, t),
		G: lerp(s.Low.G, s.High.G, t),
		B: lerp(s.Low.B, s.High.B, t),
		A: 255,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Hex renders c as a #rrggbb string.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

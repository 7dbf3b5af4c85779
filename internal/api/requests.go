// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"github.com/tomtom215/soundtrail/internal/render"
	"github.com/tomtom215/soundtrail/internal/selection"
)

// YearRequest is the body of POST /selection/year.
type YearRequest struct {
	Year int `json:"year" validate:"required,gte=1,lte=9999"`
}

// RangeRequest is the body of POST /selection/range. The dates are checked
// by the dashboard so that bad text is reported as INVALID_DATE.
type RangeRequest struct {
	Start string `json:"start" validate:"max=32"`
	End   string `json:"end" validate:"max=32"`
}

// RangeResponse is the data of a successful range apply. Inputs holds the
// values the date inputs must show, which differ from the request when
// Swapped is set.
type RangeResponse struct {
	Swapped   bool                `json:"swapped"`
	Inputs    selection.Inputs    `json:"inputs"`
	Dashboard *selection.Snapshot `json:"dashboard"`
}

// LayoutRequest is the body of POST /layout.
type LayoutRequest struct {
	Widths map[string]int `json:"widths" validate:"required,min=1,dive,keys,region,endkeys,gte=0,lte=20000"`
}

func (req *LayoutRequest) regionWidths() map[render.Region]int {
	widths := make(map[render.Region]int, len(req.Widths))
	for name, w := range req.Widths {
		widths[render.Region(name)] = w
	}
	return widths
}

// YearsResponse is the data of GET /years.
type YearsResponse struct {
	Years []int `json:"years"`
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package render turns aggregation output into HTML/SVG fragments, one per
dashboard region.

Every renderer is a pure function of its input and the region width: the
same input always produces byte-identical output, and the whole fragment is
rebuilt on every call. A renderer never fails; when it has nothing to draw
it returns a Fragment in one of the typed empty states:

  - no_data: the aggregation is empty (or all zero) for the range
  - unavailable: the source export lacks the field the chart needs
  - too_small: the region is narrower than Layout.MinWidth
  - error / loading: set by the caller around dataset loading

Charts use a fixed height and the reported region width. Bars carry a
<title> tooltip with the exact value and a SMIL <animate> growing them
from a zero baseline.
*/
package render

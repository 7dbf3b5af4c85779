// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/soundtrail/internal/models"
)

// ParseJSON parses a JSON export: an array of objects. A field is
// available when any object carries its key, even with a null value.
func ParseJSON(r io.Reader, loc *time.Location, stats *ImportStats) (*Dataset, error) {
	if stats == nil {
		stats = &ImportStats{}
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode json export: %w", err)
	}

	availability := models.FieldAvailability{}
	builder := &rowBuilder{coercer: newCoercer(loc), stats: stats}
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		values := make(row, len(obj))
		for _, key := range keys {
			field, ok := logicalField(key)
			if !ok {
				continue
			}
			availability[field] = true
			if _, seen := values[field]; seen {
				continue
			}
			values[field] = jsonScalar(obj[key])
		}
		builder.add(values)
	}
	return builder.dataset(availability), nil
}

// jsonScalar renders a decoded JSON value the way a CSV cell would carry it.
// Objects and arrays read as empty.
func jsonScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package playimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tomtom215/soundtrail/internal/models"
)

// ErrMissingHeader is returned when a CSV source has no header row.
var ErrMissingHeader = errors.New("csv source has no header row")

// ParseCSV parses a CSV export. Unknown columns are ignored; rows shorter
// than the header read the missing cells as empty.
func ParseCSV(r io.Reader, loc *time.Location, stats *ImportStats) (*Dataset, error) {
	if stats == nil {
		stats = &ImportStats{}
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	availability := models.FieldAvailability{}
	columnMap := make(map[int]string)
	for i, name := range header {
		field, ok := logicalField(name)
		if !ok || availability[field] {
			continue
		}
		availability[field] = true
		columnMap[i] = field
	}

	builder := &rowBuilder{coercer: newCoercer(loc), stats: stats}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", stats.Rows+2, err)
		}
		if isBlank(record) {
			continue
		}
		values := make(row, len(columnMap))
		for i, field := range columnMap {
			if i < len(record) {
				values[field] = record[i]
			}
		}
		builder.add(values)
	}
	return builder.dataset(availability), nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

func isBlank(record []string) bool {
	for _, v := range record {
		if v != "" {
			return false
		}
	}
	return true
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INVALID_DATE",
//	    "message": "start date must use YYYY-MM-DD",
//	    "details": {"field": "start"}
//	  },
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and cache tracking.
//
// QueryTimeMS is the time spent producing the payload (pipeline run or
// snapshot lookup). Cached is set when the rendered regions came from the
// render cache instead of a fresh pipeline run.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	Version     uint64    `json:"version,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: request body failed validation
//   - INVALID_DATE: a date input was not a valid YYYY-MM-DD date
//   - DATASET_LOADING: the dataset has not finished loading
//   - DATASET_UNAVAILABLE: the dataset failed to load
//   - INVALID_DRAG: a drag event arrived out of sequence
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	DatasetState  string    `json:"dataset_state"`
	RecordCount   int       `json:"record_count"`
	StoreBackend  string    `json:"store_backend"`
	Uptime        float64   `json:"uptime_seconds"`
	LastLoadedAt  time.Time `json:"last_loaded_at,omitempty"`
	LoadErrorText string    `json:"load_error,omitempty"`
}

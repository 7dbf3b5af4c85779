// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package metrics provides Prometheus metrics for the dashboard.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:3858/metrics

# Available Metrics

Dataset:
  - soundtrail_dataset_records: records currently loaded
  - soundtrail_dataset_load_duration_seconds: time to read and parse the export
  - soundtrail_import_rows_total{result}: rows imported or skipped (timestamp, duration)
  - soundtrail_dataset_state{state}: 1 for the current load state

Pipeline:
  - soundtrail_pipeline_runs_total{trigger}: filter/aggregate/render runs (year, apply, drag, layout, load)
  - soundtrail_pipeline_duration_seconds{trigger}
  - soundtrail_render_version: version of the current snapshot
  - soundtrail_drag_frames_total{outcome}: applied, dropped or ignored pointer moves
  - soundtrail_window_records: records in the current coarse window
  - soundtrail_store_window_duration_seconds{backend}

Cache:
  - soundtrail_cache_hits_total{cache}, soundtrail_cache_misses_total{cache}

HTTP and WebSocket:
  - soundtrail_api_requests_total{method,endpoint,status}
  - soundtrail_api_request_duration_seconds{method,endpoint}
  - soundtrail_api_active_requests
  - soundtrail_api_rate_limit_hits_total{endpoint}
  - soundtrail_websocket_connections
  - soundtrail_websocket_messages_total{direction,type}
*/
package metrics

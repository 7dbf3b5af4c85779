// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package api provides the HTTP surface of the dashboard: a chi router, the
JSON handlers that drive the selection controller, the WebSocket upgrade
and the index page.

# Routes

	GET  /                         index page (html/template shell)
	GET  /metrics                  Prometheus metrics
	GET  /api/v1/health            health and dataset status
	GET  /api/v1/health/ready      503 until the dataset is loaded
	GET  /api/v1/health/performance  per-endpoint latency percentiles
	GET  /api/v1/dashboard         current snapshot
	GET  /api/v1/years             years present in the dataset
	POST /api/v1/selection/year    {"year":2024}
	POST /api/v1/selection/range   {"start":"2024-03-04","end":"2024-05-05"}
	POST /api/v1/selection/drag    {"type":"pointer_move","x":131}
	POST /api/v1/layout            {"widths":{"top_tracks":640}}
	GET  /api/v1/ws                WebSocket upgrade

# Responses

Every JSON endpoint answers with models.APIResponse. Selection errors map
to status codes by their code:

	DATASET_LOADING, DATASET_UNAVAILABLE  503
	INVALID_DATE, INVALID_YEAR, INVALID_DRAG, VALIDATION_ERROR  400
	RATE_LIMIT_EXCEEDED  429

A rejected command never changes the dashboard.

# Middleware

Global: request ID, panic recovery, CORS (go-chi/cors), gzip (klauspost
gzhttp). API routes add the rate limiter (go-chi/httprate), Prometheus
request metrics and the performance monitor.
*/
package api

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

// Package middleware provides the HTTP middleware of the API server.
//
// All middleware uses the chi signature func(http.Handler) http.Handler:
//
//   - RequestID: X-Request-ID propagation plus request and correlation IDs
//     in the logging context
//   - PrometheusMetrics: request count, latency and in-flight gauge, labelled
//     by chi route pattern
//   - Compression: gzip via klauspost/compress/gzhttp for bodies of 1 KiB
//     and more, skipping WebSocket upgrades
//   - PerformanceMonitor: sliding window of request latencies for the
//     performance health endpoint
//
// Typical order in the router:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.PrometheusMetrics)
//	r.Use(perf.Middleware)
//	r.Use(compress)
package middleware

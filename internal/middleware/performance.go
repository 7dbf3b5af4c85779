// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/soundtrail/internal/logging"
)

// RequestMetrics is one recorded request.
type RequestMetrics struct {
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	DurationMS int64     `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats contains aggregated statistics for an endpoint
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MinDuration  int64   `json:"min_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests for the
// performance health endpoint. Drag frames arrive at pointer rate, so the
// window shows whether the live path keeps up.
type PerformanceMonitor struct {
	mu         sync.RWMutex
	metrics    []RequestMetrics
	maxMetrics int
	slow       time.Duration
}

// NewPerformanceMonitor keeps the last maxMetrics requests and warns about
// requests slower than slow. A zero slow threshold disables the warning.
func NewPerformanceMonitor(maxMetrics int, slow time.Duration) *PerformanceMonitor {
	if maxMetrics <= 0 {
		maxMetrics = 1000
	}
	return &PerformanceMonitor{
		metrics:    make([]RequestMetrics, 0, maxMetrics),
		maxMetrics: maxMetrics,
		slow:       slow,
	}
}

// RecordRequest adds a request metric
func (pm *PerformanceMonitor) RecordRequest(metric RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.metrics = append(pm.metrics, metric)
	if len(pm.metrics) > pm.maxMetrics {
		pm.metrics = pm.metrics[len(pm.metrics)-pm.maxMetrics:]
	}
}

// GetStats returns per-endpoint statistics over the window, busiest first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	byEndpoint := make(map[string][]int64)
	for _, m := range pm.metrics {
		key := m.Method + " " + m.Endpoint
		byEndpoint[key] = append(byEndpoint[key], m.DurationMS)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, durations := range byEndpoint {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		var sum int64
		for _, d := range durations {
			sum += d
		}
		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(durations)),
			AvgDuration:  float64(sum) / float64(len(durations)),
			P50Duration:  percentile(durations, 0.50),
			P95Duration:  percentile(durations, 0.95),
			P99Duration:  percentile(durations, 0.99),
			MinDuration:  durations[0],
			MaxDuration:  durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// GetRecentMetrics returns the most recent N metrics
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if n > len(pm.metrics) {
		n = len(pm.metrics)
	}
	recent := make([]RequestMetrics, n)
	copy(recent, pm.metrics[len(pm.metrics)-n:])
	return recent
}

// Middleware records every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		elapsed := time.Since(start)
		endpoint := RoutePattern(r)
		pm.RecordRequest(RequestMetrics{
			Endpoint:   endpoint,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: wrapper.statusCode,
			Timestamp:  start,
		})

		if pm.slow > 0 && elapsed > pm.slow {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("endpoint", endpoint).
				Dur("duration", elapsed).
				Msg("Slow request detected")
		}
	})
}

// percentile calculates the percentile value from a sorted slice
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}

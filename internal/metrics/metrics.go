// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "soundtrail"

var (
	// Dataset Metrics
	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Number of play records currently loaded",
		},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time to read and parse the listening export",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ImportRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Export rows by outcome",
		},
		[]string{"result"}, // "imported", "skipped_timestamp", "skipped_duration"
	)

	DatasetState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_state",
			Help:      "1 for the current dataset state (loading, ready, failed)",
		},
		[]string{"state"},
	)

	// Pipeline Metrics
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Filter/aggregate/render pipeline runs by trigger",
		},
		[]string{"trigger"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a pipeline run",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"trigger"},
	)

	RenderVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "render_version",
			Help:      "Version of the current dashboard snapshot",
		},
	)

	DragFrames = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drag_frames_total",
			Help:      "Pointer-move frames during handle drags by outcome",
		},
		[]string{"outcome"}, // "applied", "dropped", "ignored"
	)

	WindowRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_records",
			Help:      "Records in the current coarse window",
		},
	)

	StoreWindowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_window_duration_seconds",
			Help:      "Duration of coarse-window queries",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses",
		},
		[]string{"cache"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open WebSocket connections",
		},
	)

	WSMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_messages_total",
			Help:      "WebSocket messages by direction and type",
		},
		[]string{"direction", "type"},
	)
)

// Drag frame outcomes.
const (
	DragApplied = "applied"
	DragDropped = "dropped"
	DragIgnored = "ignored"
)

var datasetStates = []string{"loading", "ready", "failed"}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPipelineRun records one pipeline run and the resulting version.
func RecordPipelineRun(trigger string, duration time.Duration, version uint64) {
	PipelineRuns.WithLabelValues(trigger).Inc()
	PipelineDuration.WithLabelValues(trigger).Observe(duration.Seconds())
	RenderVersion.Set(float64(version))
}

// RecordDragFrame counts a pointer-move frame by outcome.
func RecordDragFrame(outcome string) {
	DragFrames.WithLabelValues(outcome).Inc()
}

// RecordImport records the outcome of a dataset load.
func RecordImport(duration time.Duration, imported, skippedTimestamp, skippedDuration int64) {
	DatasetLoadDuration.Observe(duration.Seconds())
	ImportRows.WithLabelValues("imported").Add(float64(imported))
	ImportRows.WithLabelValues("skipped_timestamp").Add(float64(skippedTimestamp))
	ImportRows.WithLabelValues("skipped_duration").Add(float64(skippedDuration))
}

// SetDatasetState marks state as the current dataset state.
func SetDatasetState(state string) {
	for _, s := range datasetStates {
		v := 0.0
		if s == state {
			v = 1
		}
		DatasetState.WithLabelValues(s).Set(v)
	}
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordWindowQuery records a coarse-window query.
func RecordWindowQuery(backend string, duration time.Duration, records int) {
	StoreWindowDuration.WithLabelValues(backend).Observe(duration.Seconds())
	WindowRecords.Set(float64(records))
}

// RecordWSMessage counts a WebSocket message; direction is in or out.
func RecordWSMessage(direction, messageType string) {
	WSMessages.WithLabelValues(direction, messageType).Inc()
}

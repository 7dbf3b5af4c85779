// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen, logged string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		logged = logging.RequestIDFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		header   string
		preserve bool
	}{
		{name: "generated", header: ""},
		{name: "upstream", header: "abc-123", preserve: true},
		{name: "oversized upstream", header: strings.Repeat("x", 200)},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set(RequestIDHeader, tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		got := rec.Header().Get(RequestIDHeader)
		if got == "" || got != seen || got != logged {
			t.Errorf("%s: header=%q context=%q logging=%q", tt.name, got, seen, logged)
		}
		if tt.preserve && got != tt.header {
			t.Errorf("%s: upstream ID replaced with %q", tt.name, got)
		}
		if !tt.preserve && len(got) != 36 {
			t.Errorf("%s: want generated UUID, got %q", tt.name, got)
		}
	}

	if GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()) != "" {
		t.Error("GetRequestID without middleware should be empty")
	}
}

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/things/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/things/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("request counter delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v after completion", got)
	}
}

func TestCompression(t *testing.T) {
	t.Parallel()

	compress, err := Compression()
	if err != nil {
		t.Fatal(err)
	}
	body := strings.Repeat("<rect/>", 500)
	h := compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, body)
	}))

	t.Run("gzip accepted", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "gzip" {
			t.Fatalf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
		}
		zr, err := gzip.NewReader(rec.Body)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(zr)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != body {
			t.Error("decompressed body differs")
		}
	})

	t.Run("no accept-encoding", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Header().Get("Content-Encoding") != "" || rec.Body.String() != body {
			t.Error("response compressed without Accept-Encoding")
		}
	})

	t.Run("websocket upgrade", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		req.Header.Set("Upgrade", "websocket")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Header().Get("Content-Encoding") != "" {
			t.Error("upgrade request was compressed")
		}
	})
}

func TestPerformanceMonitor(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3, time.Hour)
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/a", func(w http.ResponseWriter, _ *http.Request) {})
	r.Post("/b", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/a", nil),
		httptest.NewRequest(http.MethodGet, "/a", nil),
		httptest.NewRequest(http.MethodGet, "/a", nil),
		httptest.NewRequest(http.MethodPost, "/b", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("window holds %d requests, want 3", len(recent))
	}
	last := recent[len(recent)-1]
	if last.Endpoint != "/b" || last.StatusCode != http.StatusBadRequest {
		t.Errorf("last = %+v", last)
	}

	stats := pm.GetStats()
	if len(stats) != 2 || stats[0].Endpoint != "GET /a" || stats[0].RequestCount != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	sorted := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want int64
	}{
		{0, 1},
		{0.5, 5},
		{0.95, 9},
		{1, 10},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
	if percentile(nil, 0.5) != 0 {
		t.Error("percentile of empty slice should be 0")
	}
}

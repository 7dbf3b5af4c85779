// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Debug().Str("handle", "start").Msg("frame dropped")

	out := buf.String()
	if !strings.Contains(out, "frame dropped") || !strings.Contains(out, `"handle":"start"`) {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, `"level":"debug"`) {
		t.Errorf("expected debug level in output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestCtxAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("pipeline run")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) || !strings.Contains(out, `"correlation_id":"corr-1"`) {
		t.Errorf("context IDs missing: %s", out)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}
	if len(GenerateCorrelationID()) != 8 {
		t.Error("correlation IDs should be 8 characters")
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(zerolog.New(&buf))
	logger := slog.New(handler).With("service", "loader")

	logger.Warn("service restarted", slog.Group("stats", "attempt", 2, "ok", false))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"loader"`, `"stats.attempt":2`, `"stats.ok":false`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/soundtrail/internal/config"
	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/middleware"
	"github.com/tomtom215/soundtrail/internal/render"
	"github.com/tomtom215/soundtrail/internal/selection"
	ws "github.com/tomtom215/soundtrail/internal/websocket"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// SelectionController is the command surface of the selection controller.
// Satisfied by *selection.Controller.
type SelectionController interface {
	Snapshot(ctx context.Context) (*selection.Snapshot, error)
	Years(ctx context.Context) ([]int, error)
	SelectYear(ctx context.Context, year int) (*selection.Snapshot, error)
	ApplyRange(ctx context.Context, start, end string) (*selection.Snapshot, bool, error)
	Drag(ctx context.Context, ev selection.Event) (selection.DragResult, error)
	SetWidths(ctx context.Context, widths map[render.Region]int) (*selection.Snapshot, error)
	Status(ctx context.Context) (selection.Status, error)
}

// Handler contains dependencies for API handlers
//
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_helpers.go: response and request helpers
//   - handlers_selection.go: dashboard and selection endpoints
//   - handlers_health.go: health and performance endpoints
//   - handlers_index.go: index page
type Handler struct {
	controller SelectionController
	wsHub      *ws.Hub
	config     *config.Config
	perfMon    *middleware.PerformanceMonitor
	startTime  time.Time
}

// NewHandler creates a handler. wsHub may be nil, in which case the
// WebSocket endpoint answers 503.
func NewHandler(controller SelectionController, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		controller: controller,
		wsHub:      wsHub,
		config:     cfg,
		perfMon:    middleware.NewPerformanceMonitor(1000, time.Second), // last 1000 requests
		startTime:  time.Now(),
	}
}

// PerformanceMonitor returns the monitor fed by the router middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts the page's own origin and the configured
// CORS origins. Browsers always send Origin on WebSocket handshakes.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if strings.EqualFold(host, r.Host) {
		return true
	}

	if h.config != nil {
		for _, allowed := range h.config.Security.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection, queues the current snapshot for the
// client and registers it with the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)

	// Queued before registration so it precedes every broadcast.
	if snap, err := h.controller.Snapshot(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("No initial snapshot for WebSocket client")
	} else {
		client.Send(ws.Message{Type: ws.MessageTypeDashboard, Data: snap})
	}

	if !h.wsHub.Join(client) {
		_ = conn.Close() // hub is shutting down
		return
	}
	client.Start()
}

// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/soundtrail/internal/middleware"
)

// Router wires the handler into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() (http.Handler, error) {
	compress, err := middleware.Compression()
	if err != nil {
		return nil, fmt.Errorf("compression middleware: %w", err)
	}

	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(compress)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/", router.handler.Index)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.handler.perfMon.Middleware)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/ready", router.handler.HealthReady)
			r.Get("/performance", router.handler.HealthPerformance)
		})

		r.Get("/ws", router.handler.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/dashboard", router.handler.Dashboard)
			r.Get("/years", router.handler.Years)
			r.Post("/selection/year", router.handler.SelectYear)
			r.Post("/selection/range", router.handler.ApplyRange)
			r.Post("/layout", router.handler.Layout)
		})

		r.With(router.chiMiddleware.RateLimitDrag()).Post("/selection/drag", router.handler.Drag)
	})

	return r, nil
}
